package storage

import (
	"context"
	"errors"
	"time"

	"codeloft/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a duplicate entity.
	ErrAlreadyExists = errors.New("already exists")
)

// Store persists projects and their chunk embeddings, and answers vector
// similarity queries over them.
type Store interface {
	// Project operations. A project document carries the file tree and the
	// path-keyed content map; the workspace holds a working copy and saves
	// it back explicitly.
	CreateProject(ctx context.Context, project *types.Project) error
	GetProject(ctx context.Context, id string) (*types.Project, error)
	UpdateProject(ctx context.Context, project *types.Project) error
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]ProjectInfo, error)

	// Chunk operations. Rows for a project are replaced wholesale on every
	// index run: DeleteChunks first, then InsertChunks in batches.
	DeleteChunks(ctx context.Context, projectID string) error
	InsertChunks(ctx context.Context, rows []*ChunkRecord) error
	CountChunks(ctx context.Context, projectID string) (int, error)

	// SearchChunks returns up to limit chunks for the project whose cosine
	// similarity to the query vector meets floor, ordered by descending
	// similarity.
	SearchChunks(ctx context.Context, projectID string, vector []float32, floor float64, limit int) ([]ChunkMatch, error)

	Close() error
}

// ProjectInfo is the listing view of a stored project, without contents.
type ProjectInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChunkRecord is one stored chunk with its embedding vector.
type ChunkRecord struct {
	ID         int64
	ProjectID  string
	FilePath   string
	ChunkIndex int
	Content    string
	Vector     []float32
}

// ChunkMatch is one similarity-search result.
type ChunkMatch struct {
	FilePath   string
	ChunkIndex int
	Content    string
	Similarity float64
}
