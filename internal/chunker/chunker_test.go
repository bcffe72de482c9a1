package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numberedLines builds a file body of n lines "line 1".."line n".
func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestChunkFile_SmallFileSingleChunk(t *testing.T) {
	content := numberedLines(50)
	chunks := ChunkFile("pkg/util/helpers.go", content)

	require.Len(t, chunks, 1)
	assert.Equal(t, "pkg/util/helpers.go", chunks[0].FilePath)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, "// pkg/util/helpers.go\n"+content, chunks[0].Content)
}

func TestChunkFile_ExactlyChunkSizeIsSingleChunk(t *testing.T) {
	content := numberedLines(ChunkSize)
	chunks := ChunkFile("a.py", content)

	require.Len(t, chunks, 1)
	assert.Equal(t, "// a.py\n"+content, chunks[0].Content)
}

func TestChunkFile_250LinesYieldsTwoChunks(t *testing.T) {
	chunks := ChunkFile("a.py", numberedLines(250))

	require.Len(t, chunks, 2)

	// Window step is ChunkSize-Overlap = 180: lines 1-200, then 181-250.
	assert.True(t, strings.HasPrefix(chunks[0].Content, "// a.py (lines 1-200)\n"))
	assert.True(t, strings.HasPrefix(chunks[1].Content, "// a.py (lines 181-250)\n"))
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[1].ChunkIndex)

	assert.Contains(t, chunks[0].Content, "\nline 1\n")
	assert.True(t, strings.HasSuffix(chunks[0].Content, "line 200"))
	assert.Contains(t, chunks[1].Content, "\nline 181\n")
	assert.True(t, strings.HasSuffix(chunks[1].Content, "line 250"))
}

func TestChunkFile_OverlapAndCoverage(t *testing.T) {
	const total = 500
	chunks := ChunkFile("big.go", numberedLines(total))
	require.Len(t, chunks, 3)

	bodyLines := func(c string) []string {
		lines := strings.Split(c, "\n")
		return lines[1:] // drop header
	}

	for i := 0; i < len(chunks)-1; i++ {
		cur := bodyLines(chunks[i].Content)
		next := bodyLines(chunks[i+1].Content)
		require.GreaterOrEqual(t, len(cur), Overlap)
		assert.Equal(t, cur[len(cur)-Overlap:], next[:Overlap],
			"chunk %d tail must equal chunk %d head", i, i+1)
	}

	// Union of ranges covers 1..total with no gap.
	last := bodyLines(chunks[len(chunks)-1].Content)
	assert.Equal(t, fmt.Sprintf("line %d", total), last[len(last)-1])
	first := bodyLines(chunks[0].Content)
	assert.Equal(t, "line 1", first[0])
}

func TestChunkFile_Deterministic(t *testing.T) {
	content := numberedLines(321)
	assert.Equal(t, ChunkFile("x.ts", content), ChunkFile("x.ts", content))
}

func TestChunkProject_SortedPathOrder(t *testing.T) {
	contents := map[string]string{
		"src/zebra.go": "z",
		"src/alpha.go": "a",
		"README.md":    "hello",
	}

	chunks := ChunkProject(contents)
	require.Len(t, chunks, 3)
	assert.Equal(t, "README.md", chunks[0].FilePath)
	assert.Equal(t, "src/alpha.go", chunks[1].FilePath)
	assert.Equal(t, "src/zebra.go", chunks[2].FilePath)

	// Same input, same sequence.
	assert.Equal(t, chunks, ChunkProject(contents))
}

func TestChunkProject_Empty(t *testing.T) {
	assert.Empty(t, ChunkProject(nil))
	assert.Empty(t, ChunkProject(map[string]string{}))
}

func TestChunkFile_ChunkIndexPerFile(t *testing.T) {
	contents := map[string]string{
		"a.go": numberedLines(250),
		"b.go": numberedLines(250),
	}
	chunks := ChunkProject(contents)
	require.Len(t, chunks, 4)

	// chunk_index restarts at 0 for each file.
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[1].ChunkIndex)
	assert.Equal(t, 0, chunks[2].ChunkIndex)
	assert.Equal(t, 1, chunks[3].ChunkIndex)
}
