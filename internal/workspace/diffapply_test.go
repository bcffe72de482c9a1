package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeloft/internal/codeblock"
	"codeloft/pkg/types"
)

func TestReviewAgainstActiveBuffer(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.py": "print(0)\n"})
	require.True(t, ws.Open("a.py"))
	ws.SetActiveBuffer("print(0)  # edited\n")

	diff, err := ws.Review("print(1)\n", "")
	require.NoError(t, err)

	// The original side is the live buffer, not the stored content.
	assert.Equal(t, "print(0)  # edited\n", diff.Original)
	assert.Equal(t, "print(1)\n", diff.Modified)
	assert.Equal(t, "a.py", diff.TargetPath)
	assert.Equal(t, "python", diff.Language)
	assert.NotEmpty(t, diff.Unified)
}

func TestReviewNonActiveFileUsesStoredContent(t *testing.T) {
	ws := newTestWorkspace(map[string]string{
		"a.py": "print('a')\n",
		"c.py": "print('c')\n",
	})
	require.True(t, ws.Open("a.py"))
	ws.SetActiveBuffer("print('a edited')\n")

	diff, err := ws.Review("print('new c')\n", "c.py")
	require.NoError(t, err)
	assert.Equal(t, "print('c')\n", diff.Original)
	assert.Equal(t, "c.py", diff.TargetPath)
}

func TestReviewReplacesPendingDiff(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "one"})
	require.True(t, ws.Open("a.js"))

	_, err := ws.Review("two", "")
	require.NoError(t, err)
	_, err = ws.Review("three", "")
	require.NoError(t, err)

	assert.Equal(t, "three", ws.PendingDiff().Modified)
}

func TestReviewNoTarget(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": ""})

	_, err := ws.Review("code", "")
	assert.ErrorIs(t, err, types.ErrNoTargetFile)
}

func TestAcceptNavigatesToTargetFile(t *testing.T) {
	ws := newTestWorkspace(map[string]string{
		"a.py": "print('a')\n",
		"c.py": "print('c')\n",
	})
	require.True(t, ws.Open("a.py"))
	ws.SetActiveBuffer("print('a edited')\n")

	_, err := ws.Review("print('new c')\n", "c.py")
	require.NoError(t, err)
	require.True(t, ws.AcceptDiff())

	// Accept flushed the active buffer before switching, so the edit to
	// a.py survived.
	content, _ := ws.FileContent("a.py")
	assert.Equal(t, "print('a edited')\n", content)

	path, buffer := ws.ActiveFile()
	assert.Equal(t, "c.py", path)
	assert.Equal(t, "print('new c')\n", buffer)
	assert.Equal(t, "python", ws.ActiveLanguage())
	assert.Nil(t, ws.PendingDiff())
}

func TestAcceptCreatesNewFile(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "a"})
	require.True(t, ws.Open("a.js"))

	diff, err := ws.Review("export {};\n", "src/new.ts")
	require.NoError(t, err)
	assert.Empty(t, diff.Original)

	require.True(t, ws.AcceptDiff())
	content, ok := ws.FileContent("src/new.ts")
	require.True(t, ok)
	assert.Equal(t, "export {};\n", content)
	assert.Contains(t, treePaths(ws.FileTree(), ""), "src/new.ts")
}

func TestAcceptWithoutPendingDiff(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "a"})
	assert.False(t, ws.AcceptDiff())
}

func TestRejectDiscardsWithoutMutation(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "original"})
	require.True(t, ws.Open("a.js"))

	_, err := ws.Review("proposed", "")
	require.NoError(t, err)
	require.True(t, ws.RejectDiff())

	content, _ := ws.FileContent("a.js")
	assert.Equal(t, "original", content)
	assert.Nil(t, ws.PendingDiff())
	assert.False(t, ws.RejectDiff())
}

func TestApplyAndUndoScenario(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"b.py": "print(0)"})

	require.NoError(t, ws.Apply("print(1)", "b.py"))
	content, _ := ws.FileContent("b.py")
	assert.Equal(t, "print(1)", content)
	assert.True(t, ws.UndoAvailable())

	require.True(t, ws.Undo())
	content, _ = ws.FileContent("b.py")
	assert.Equal(t, "print(0)", content)
	assert.False(t, ws.UndoAvailable())

	// Second undo is a no-op.
	assert.False(t, ws.Undo())
	content, _ = ws.FileContent("b.py")
	assert.Equal(t, "print(0)", content)
}

func TestApplyFallsBackToActiveFile(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "old"})
	require.True(t, ws.Open("a.js"))

	require.NoError(t, ws.Apply("new", ""))
	_, buffer := ws.ActiveFile()
	assert.Equal(t, "new", buffer)
	content, _ := ws.FileContent("a.js")
	assert.Equal(t, "new", content)
}

func TestApplyNoTargetFile(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "a"})

	err := ws.Apply("code", "")
	assert.ErrorIs(t, err, types.ErrNoTargetFile)
	assert.False(t, ws.UndoAvailable())
}

func TestApplyOverwritesUndoSlot(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "v0"})

	require.NoError(t, ws.Apply("v1", "a.js"))
	require.NoError(t, ws.Apply("v2", "a.js"))

	// Only the most recent apply is revertible.
	require.True(t, ws.Undo())
	content, _ := ws.FileContent("a.js")
	assert.Equal(t, "v1", content)
	assert.False(t, ws.Undo())
}

func TestApplyNotifies(t *testing.T) {
	var notices []string
	ws := New(&types.Project{
		ID:           "p1",
		FileContents: map[string]string{"a.js": "old"},
	}, func(msg string) { notices = append(notices, msg) })

	require.NoError(t, ws.Apply("new", "a.js"))
	require.True(t, ws.Undo())

	require.Len(t, notices, 2)
	assert.Contains(t, notices[0], "a.js")
	assert.Contains(t, notices[1], "a.js")
}

func TestApplyCapturesLiveBufferForUndo(t *testing.T) {
	ws := newTestWorkspace(map[string]string{"a.js": "stored"})
	require.True(t, ws.Open("a.js"))
	ws.SetActiveBuffer("unsaved edit")

	require.NoError(t, ws.Apply("applied", "a.js"))
	require.True(t, ws.Undo())

	// Undo restores the pre-apply buffer, not the older stored content.
	_, buffer := ws.ActiveFile()
	assert.Equal(t, "unsaved edit", buffer)
}

func TestReviewBlockFromAnswer(t *testing.T) {
	answer := "Here is the fix:\n\n```python\n# file: c.py\nprint('new c')\n```\n"
	blk := codeblock.First(answer)
	require.NotNil(t, blk)

	ws := newTestWorkspace(map[string]string{"c.py": "print('c')\n"})
	diff, err := ws.ReviewBlock(*blk)
	require.NoError(t, err)
	assert.Equal(t, "c.py", diff.TargetPath)
	assert.Equal(t, "print('new c')", diff.Modified)

	require.True(t, ws.AcceptDiff())
	content, ok := ws.FileContent("c.py")
	require.True(t, ok)
	assert.Equal(t, "print('new c')", content)
}

func TestApplyBlockWithoutMarkerNeedsActiveFile(t *testing.T) {
	blk := codeblock.First("```js\nconsole.log(1)\n```\n")
	require.NotNil(t, blk)

	ws := newTestWorkspace(map[string]string{"a.js": "console.log(0)\n"})
	assert.ErrorIs(t, ws.ApplyBlock(*blk), types.ErrNoTargetFile)

	require.True(t, ws.Open("a.js"))
	require.NoError(t, ws.ApplyBlock(*blk))
	content, _ := ws.FileContent("a.js")
	assert.Equal(t, "console.log(1)", content)
}
