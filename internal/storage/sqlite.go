package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"codeloft/pkg/types"
)

// SQLiteStore implements Store on SQLite. The driver is selected at build
// time (see build_purego.go and build_cgo.go).
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if necessary) the database at path and
// applies any pending migrations.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := openDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway; one connection avoids lock errors.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return db, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// CreateProject inserts a new project document.
func (s *SQLiteStore) CreateProject(ctx context.Context, project *types.Project) error {
	tree, contents, err := marshalProjectDocs(project)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, file_tree, file_contents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, tree, contents, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: project %s", ErrAlreadyExists, project.ID)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	project.UpdatedAt = now
	return nil
}

// GetProject loads a project document by id.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, file_tree, file_contents, updated_at
		FROM projects WHERE id = ?`, id)

	var (
		project  types.Project
		tree     string
		contents string
	)
	err := row.Scan(&project.ID, &project.Name, &tree, &contents, &project.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	if err := json.Unmarshal([]byte(tree), &project.FileTree); err != nil {
		return nil, fmt.Errorf("decode file tree: %w", err)
	}
	if err := json.Unmarshal([]byte(contents), &project.FileContents); err != nil {
		return nil, fmt.Errorf("decode file contents: %w", err)
	}
	return &project, nil
}

// UpdateProject replaces a project document and bumps updated_at.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *types.Project) error {
	tree, contents, err := marshalProjectDocs(project)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, file_tree = ?, file_contents = ?, updated_at = ?
		WHERE id = ?`,
		project.Name, tree, contents, now, project.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if err := requireRow(res, project.ID); err != nil {
		return err
	}
	project.UpdatedAt = now
	return nil
}

// DeleteProject removes a project. Chunk rows cascade.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRow(res, id)
}

// ListProjects returns all projects, most recently updated first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteChunks removes all chunk rows for a project.
func (s *SQLiteStore) DeleteChunks(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM code_chunks WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	return nil
}

// InsertChunks inserts a batch of chunk rows in a single transaction.
func (s *SQLiteStore) InsertChunks(ctx context.Context, records []*ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO code_chunks (project_id, file_path, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx, rec.ProjectID, rec.FilePath, rec.ChunkIndex,
			rec.Content, serializeVector(rec.Vector))
		if err != nil {
			return fmt.Errorf("insert chunk %s[%d]: %w", rec.FilePath, rec.ChunkIndex, err)
		}
	}
	return tx.Commit()
}

// CountChunks returns the number of stored chunks for a project.
func (s *SQLiteStore) CountChunks(ctx context.Context, projectID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM code_chunks WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return count, nil
}

// SearchChunks scans the project's chunk rows and ranks them by cosine
// similarity in Go. Corpora here are single browser workspaces, small
// enough that a linear scan beats maintaining an ANN index.
func (s *SQLiteStore) SearchChunks(ctx context.Context, projectID string, vector []float32, floor float64, limit int) ([]ChunkMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, chunk_index, content, embedding
		FROM code_chunks WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []ChunkMatch
	for rows.Next() {
		var (
			match ChunkMatch
			blob  []byte
		)
		if err := rows.Scan(&match.FilePath, &match.ChunkIndex, &match.Content, &blob); err != nil {
			return nil, err
		}
		stored, err := deserializeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("chunk %s[%d]: %w", match.FilePath, match.ChunkIndex, err)
		}
		match.Similarity = cosineSimilarity(vector, stored)
		if match.Similarity >= floor {
			matches = append(matches, match)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortMatches(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func sortMatches(matches []ChunkMatch) {
	// Stable ordering for equal similarities keeps results deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
}

func marshalProjectDocs(project *types.Project) (tree string, contents string, err error) {
	fileTree := project.FileTree
	if fileTree == nil {
		fileTree = []types.FileNode{}
	}
	treeBytes, err := json.Marshal(fileTree)
	if err != nil {
		return "", "", fmt.Errorf("encode file tree: %w", err)
	}
	fileContents := project.FileContents
	if fileContents == nil {
		fileContents = map[string]string{}
	}
	contentBytes, err := json.Marshal(fileContents)
	if err != nil {
		return "", "", fmt.Errorf("encode file contents: %w", err)
	}
	return string(treeBytes), string(contentBytes), nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	return nil
}

// isUniqueViolation detects a primary-key or unique-index conflict without
// depending on driver-specific error types, since the driver varies by
// build tag.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

var _ Store = (*SQLiteStore)(nil)
