package workspace

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"codeloft/internal/codeblock"
	"codeloft/pkg/types"
)

// DiffState is the single pending diff awaiting review. At most one
// exists; a new Review replaces it.
type DiffState struct {
	Original   string `json:"original"`
	Modified   string `json:"modified"`
	Language   string `json:"language"`
	TargetPath string `json:"targetPath"`
	Unified    string `json:"unified"`
}

// UndoRecord remembers the single most recent Apply. A later Apply
// overwrites it; Undo consumes it.
type UndoRecord struct {
	Path            string
	PreviousContent string
}

// Review stages proposed content for the target path as a pending diff.
// An empty targetPath falls back to the active file. The original side is
// the current in-memory content: the live buffer when the target is the
// active file, the stored map entry otherwise (empty for a new file).
// Re-entrant: a Review while one is pending replaces it, never stacks.
func (w *Workspace) Review(code, targetPath string) (*DiffState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := targetPath
	if path == "" {
		path = w.activePath
	}
	if path == "" {
		return nil, types.ErrNoTargetFile
	}

	original := w.fileContents[path]
	if path == w.activePath {
		original = w.activeBuffer
	}

	w.diff = &DiffState{
		Original:   original,
		Modified:   code,
		Language:   types.LanguageForPath(path),
		TargetPath: path,
		Unified:    unifiedDiff(original, code),
	}
	return w.copyDiffLocked(), nil
}

// ReviewBlock stages a resolved answer block, using its file marker as the
// target path.
func (w *Workspace) ReviewBlock(blk codeblock.Block) (*DiffState, error) {
	return w.Review(blk.Code, blk.TargetPath)
}

// ApplyBlock applies a resolved answer block directly, bypassing review.
func (w *Workspace) ApplyBlock(blk codeblock.Block) error {
	return w.Apply(blk.Code, blk.TargetPath)
}

// PendingDiff returns a copy of the pending diff, or nil when idle.
func (w *Workspace) PendingDiff() *DiffState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyDiffLocked()
}

func (w *Workspace) copyDiffLocked() *DiffState {
	if w.diff == nil {
		return nil
	}
	copied := *w.diff
	return &copied
}

// AcceptDiff commits the pending diff. The target file receives the
// modified content, and the workspace navigates to it: when the target is
// not the active file, the live buffer is flushed first so no edits are
// lost, then the selection switches to the target with its new content.
// No suspension point separates the flush from the commit; both happen
// under one lock acquisition.
func (w *Workspace) AcceptDiff() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.diff == nil {
		return false
	}
	diff := w.diff
	w.diff = nil

	created := false
	if _, exists := w.fileContents[diff.TargetPath]; !exists {
		created = true
	}
	if diff.TargetPath != w.activePath {
		w.flushActiveLocked()
	}
	w.fileContents[diff.TargetPath] = diff.Modified
	if created {
		w.rebuildTree()
	}
	w.activePath = diff.TargetPath
	w.activeBuffer = diff.Modified
	return true
}

// RejectDiff discards the pending diff without touching any content.
func (w *Workspace) RejectDiff() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.diff == nil {
		return false
	}
	w.diff = nil
	return true
}

// Apply commits code to the target path directly, bypassing diff review.
// An empty targetPath falls back to the active file; with neither, Apply
// fails with ErrNoTargetFile. The pre-apply content is captured in the
// undo slot, overwriting whatever was there.
func (w *Workspace) Apply(code, targetPath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := targetPath
	if path == "" {
		path = w.activePath
	}
	if path == "" {
		return types.ErrNoTargetFile
	}

	previous := w.fileContents[path]
	if path == w.activePath {
		previous = w.activeBuffer
	}
	w.undo = &UndoRecord{Path: path, PreviousContent: previous}

	_, existed := w.fileContents[path]
	w.fileContents[path] = code
	if path == w.activePath {
		w.activeBuffer = code
	}
	if !existed {
		w.rebuildTree()
	}
	w.emit(fmt.Sprintf("Applied changes to %s", path))
	return nil
}

// Undo restores the most recent Apply and clears the undo slot. A call
// with an empty slot is a no-op.
func (w *Workspace) Undo() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.undo == nil {
		return false
	}
	record := w.undo
	w.undo = nil

	w.fileContents[record.Path] = record.PreviousContent
	if record.Path == w.activePath {
		w.activeBuffer = record.PreviousContent
	}
	w.emit(fmt.Sprintf("Reverted changes to %s", record.Path))
	return true
}

// UndoAvailable reports whether an Apply can currently be reverted.
func (w *Workspace) UndoAvailable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.undo != nil
}

// unifiedDiff renders a compact patch-text preview of the change.
func unifiedDiff(original, modified string) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(original, modified)
	return dmp.PatchToText(patches)
}
