package types

import (
	"sort"
	"strings"
	"time"
)

// NodeType distinguishes files from folders in a project tree.
type NodeType string

const (
	NodeFile   NodeType = "file"
	NodeFolder NodeType = "folder"
)

// FileNode is one entry in a project's file tree. Folders carry ordered
// children; files carry an extension. The tree is a presentation index: the
// path set in FileContents is the source of truth for file identity, and the
// tree is rebuilt from it after every mutation.
type FileNode struct {
	Name      string     `json:"name"`
	Type      NodeType   `json:"type"`
	Extension string     `json:"extension,omitempty"`
	Children  []FileNode `json:"children,omitempty"`
}

// Project is a stored code project. FileContents maps absolute-in-project
// paths (ancestor names joined with "/") to full file text; once a project is
// materialized, every leaf path in FileTree has exactly one entry here.
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	FileTree     []FileNode        `json:"file_tree"`
	FileContents map[string]string `json:"file_contents"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// SortedPaths returns the project's file paths in lexical order. Chunking and
// indexing iterate this order so runs over unchanged content are reproducible.
func (p *Project) SortedPaths() []string {
	paths := make([]string, 0, len(p.FileContents))
	for path := range p.FileContents {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// BuildTree derives a file tree from a path set. Sibling order is lexical,
// which keeps the tree deterministic for a given set of paths.
func BuildTree(paths []string) []FileNode {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	var roots []FileNode
	for _, path := range sorted {
		segments := strings.Split(path, "/")
		roots = insertPath(roots, segments)
	}
	return roots
}

func insertPath(nodes []FileNode, segments []string) []FileNode {
	name := segments[0]
	leaf := len(segments) == 1

	for i := range nodes {
		if nodes[i].Name == name {
			if !leaf {
				nodes[i].Children = insertPath(nodes[i].Children, segments[1:])
			}
			return nodes
		}
	}

	node := FileNode{Name: name}
	if leaf {
		node.Type = NodeFile
		node.Extension = ExtensionOf(name)
	} else {
		node.Type = NodeFolder
		node.Children = insertPath(nil, segments[1:])
	}
	return append(nodes, node)
}

// ExtensionOf returns the file name's extension without the leading dot, or
// an empty string when there is none.
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}
