package workspace

import (
	"fmt"
	"sync"

	"codeloft/pkg/types"
)

// Notifier receives short user-facing notices (toast-style). A nil
// notifier silently drops them.
type Notifier func(message string)

// Workspace is the in-memory working copy of one project: the path-keyed
// content map with its derived file tree, the active editor buffer, the
// chat transcript, and the single-slot diff and undo state.
//
// The content map is the source of truth for file identity; the tree is a
// presentation index rebuilt from the path set, so no mutation can leave
// the two out of lockstep. All operations are safe for concurrent use.
type Workspace struct {
	mu sync.Mutex

	projectID    string
	name         string
	fileContents map[string]string
	fileTree     []types.FileNode

	activePath   string
	activeBuffer string

	messages []types.ChatMessage

	diff *DiffState
	undo *UndoRecord

	notify Notifier
}

// New materializes a workspace from a stored project. The project's
// content map is copied; later saves write the working copy back.
func New(project *types.Project, notify Notifier) *Workspace {
	contents := make(map[string]string, len(project.FileContents))
	for path, content := range project.FileContents {
		contents[path] = content
	}
	ws := &Workspace{
		projectID:    project.ID,
		name:         project.Name,
		fileContents: contents,
		notify:       notify,
	}
	ws.rebuildTree()
	return ws
}

func (w *Workspace) rebuildTree() {
	paths := make([]string, 0, len(w.fileContents))
	for path := range w.fileContents {
		paths = append(paths, path)
	}
	w.fileTree = types.BuildTree(paths)
}

func (w *Workspace) emit(message string) {
	if w.notify != nil {
		w.notify(message)
	}
}

// Open makes path the active file, loading its stored content into the
// live buffer. Returns false when the path is unknown.
func (w *Workspace) Open(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	content, ok := w.fileContents[path]
	if !ok {
		return false
	}
	w.activePath = path
	w.activeBuffer = content
	return true
}

// SetActiveBuffer records live edits to the active file. Edits stay in
// the buffer until flushed by Save, Accept or an explicit FlushActive.
func (w *Workspace) SetActiveBuffer(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.activePath != "" {
		w.activeBuffer = content
	}
}

// FlushActive commits the live buffer into the content map.
func (w *Workspace) FlushActive() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushActiveLocked()
}

func (w *Workspace) flushActiveLocked() {
	if w.activePath != "" {
		w.fileContents[w.activePath] = w.activeBuffer
	}
}

// ActiveFile returns the active path and its live buffer content. The
// path is empty when no file is open.
func (w *Workspace) ActiveFile() (string, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activePath, w.activeBuffer
}

// ActiveLanguage derives the editor language from the active file's
// extension.
func (w *Workspace) ActiveLanguage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return types.LanguageForPath(w.activePath)
}

// InsertFile adds a new file and selects it. Fails when the path exists.
func (w *Workspace) InsertFile(path, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.fileContents[path]; exists {
		return fmt.Errorf("file already exists: %s", path)
	}
	w.flushActiveLocked()
	w.fileContents[path] = content
	w.rebuildTree()
	w.activePath = path
	w.activeBuffer = content
	return nil
}

// RenameFile moves a file to a new path. The content map key, the tree,
// the active selection, and any pending diff or undo state that pointed
// at the old path all move together; no caller can observe a half-renamed
// workspace.
func (w *Workspace) RenameFile(oldPath, newPath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	content, ok := w.fileContents[oldPath]
	if !ok {
		return fmt.Errorf("no such file: %s", oldPath)
	}
	if _, exists := w.fileContents[newPath]; exists {
		return fmt.Errorf("file already exists: %s", newPath)
	}
	delete(w.fileContents, oldPath)
	w.fileContents[newPath] = content
	w.rebuildTree()

	if w.activePath == oldPath {
		w.activePath = newPath
	}
	if w.diff != nil && w.diff.TargetPath == oldPath {
		w.diff.TargetPath = newPath
	}
	if w.undo != nil && w.undo.Path == oldPath {
		w.undo.Path = newPath
	}
	return nil
}

// FileContent returns a file's stored content. The active file reports
// its live buffer, which may be ahead of the map.
func (w *Workspace) FileContent(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path == w.activePath && path != "" {
		return w.activeBuffer, true
	}
	content, ok := w.fileContents[path]
	return content, ok
}

// FileTree returns the current derived tree.
func (w *Workspace) FileTree() []types.FileNode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fileTree
}

// Snapshot flushes the active buffer and returns the workspace as a
// project document ready to be saved back to the store.
func (w *Workspace) Snapshot() *types.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushActiveLocked()

	contents := make(map[string]string, len(w.fileContents))
	for path, content := range w.fileContents {
		contents[path] = content
	}
	return &types.Project{
		ID:           w.projectID,
		Name:         w.name,
		FileTree:     w.fileTree,
		FileContents: contents,
	}
}
