package codeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleBlockWithMarker(t *testing.T) {
	text := "Here is the fix:\n\n```typescript\n// file: utils/helper.ts\nexport const add = (a: number, b: number) => a + b;\n```\n\nDone."

	blocks := Parse(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "typescript", blocks[0].Language)
	assert.Equal(t, "utils/helper.ts", blocks[0].TargetPath)
	assert.Equal(t, "export const add = (a: number, b: number) => a + b;", blocks[0].Code)
}

func TestParseMarkerStyles(t *testing.T) {
	cases := []struct {
		name   string
		marker string
		path   string
	}{
		{"slash", "// file: src/app.js", "src/app.js"},
		{"hash", "# file: scripts/run.py", "scripts/run.py"},
		{"dashes", "-- file: schema.sql", "schema.sql"},
		{"html", "<!-- file: index.html -->", "index.html"},
		{"semicolon", "; file: config.ini", "config.ini"},
		{"bare", "file: plain.txt", "plain.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := "```\n" + tc.marker + "\ncontent\n```"
			blocks := Parse(text)
			require.Len(t, blocks, 1)
			assert.Equal(t, tc.path, blocks[0].TargetPath)
			assert.Equal(t, "content", blocks[0].Code)
		})
	}
}

func TestParseNoMarker(t *testing.T) {
	text := "```go\nfunc main() {}\n```"

	blocks := Parse(text)
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].TargetPath)
	assert.Equal(t, "func main() {}", blocks[0].Code)
}

func TestParseMarkerNotOnFirstLineIgnored(t *testing.T) {
	text := "```js\nconst a = 1;\n// file: late.js\n```"

	blocks := Parse(text)
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].TargetPath)
	assert.Contains(t, blocks[0].Code, "// file: late.js")
}

func TestParseMultipleBlocks(t *testing.T) {
	text := "```js\n// file: a.js\none\n```\ntext between\n```py\n# file: b.py\ntwo\n```"

	blocks := Parse(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, "a.js", blocks[0].TargetPath)
	assert.Equal(t, "b.py", blocks[1].TargetPath)
}

func TestParseUnterminatedBlockIgnored(t *testing.T) {
	text := "Streaming in progress:\n```js\n// file: a.js\nconst a ="

	assert.Empty(t, Parse(text))
	assert.Nil(t, First(text))
}

func TestParseNoBlocks(t *testing.T) {
	assert.Empty(t, Parse("Just prose, no code here."))
}

func TestParseEmptyBlock(t *testing.T) {
	blocks := Parse("```\n```")
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Code)
	assert.Empty(t, blocks[0].TargetPath)
}

func TestFirstReturnsFirstBlock(t *testing.T) {
	text := "```js\n// file: a.js\none\n```\n```js\n// file: b.js\ntwo\n```"

	block := First(text)
	require.NotNil(t, block)
	assert.Equal(t, "a.js", block.TargetPath)
}

func TestParsePreservesInnerIndentation(t *testing.T) {
	text := "```python\n# file: app.py\ndef f():\n    return 1\n```"

	blocks := Parse(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "def f():\n    return 1", blocks[0].Code)
}
