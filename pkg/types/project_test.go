package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	tree := BuildTree([]string{
		"src/utils/helper.js",
		"src/app.js",
		"README.md",
	})

	// Lexical sibling order: README.md before src.
	require.Len(t, tree, 2)
	assert.Equal(t, "README.md", tree[0].Name)
	assert.Equal(t, NodeFile, tree[0].Type)
	assert.Equal(t, "md", tree[0].Extension)

	src := tree[1]
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, NodeFolder, src.Type)
	require.Len(t, src.Children, 2)
	assert.Equal(t, "app.js", src.Children[0].Name)
	assert.Equal(t, "utils", src.Children[1].Name)
	require.Len(t, src.Children[1].Children, 1)
	assert.Equal(t, "helper.js", src.Children[1].Children[0].Name)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}

func TestBuildTreeDeterministic(t *testing.T) {
	a := BuildTree([]string{"b.js", "a/x.js", "a/y.js"})
	b := BuildTree([]string{"a/y.js", "b.js", "a/x.js"})
	assert.Equal(t, a, b)
}

func TestSortedPaths(t *testing.T) {
	p := &Project{FileContents: map[string]string{
		"z.js": "", "a.js": "", "m/n.js": "",
	}}
	assert.Equal(t, []string{"a.js", "m/n.js", "z.js"}, p.SortedPaths())
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "go", ExtensionOf("main.go"))
	assert.Equal(t, "ts", ExtensionOf("app.test.ts"))
	assert.Empty(t, ExtensionOf("Makefile"))
	assert.Empty(t, ExtensionOf("trailing."))
}

func TestLanguageForPath(t *testing.T) {
	assert.Equal(t, "python", LanguageForPath("src/app.py"))
	assert.Equal(t, "typescript", LanguageForPath("a/b/c.tsx"))
	assert.Equal(t, "plaintext", LanguageForPath("notes.unknownext"))
	assert.Equal(t, "plaintext", LanguageForPath("LICENSE"))
}
