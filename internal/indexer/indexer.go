package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codeloft/internal/chunker"
	"codeloft/internal/embedder"
	"codeloft/internal/storage"
	"codeloft/pkg/types"
)

const (
	// EmbedBatchSize is the number of chunk texts sent to the embedding
	// provider per request.
	EmbedBatchSize = 100
	// InsertBatchSize is the number of chunk rows written per transaction.
	InsertBatchSize = 50
	// DefaultEmbedWorkers bounds concurrent embedding requests.
	DefaultEmbedWorkers = 4
)

// Indexer coordinates the indexing pipeline: chunk -> embed -> store.
// Runs for the same project are serialized; the newest run always sees
// the project contents as stored at the time it starts.
type Indexer struct {
	store    storage.Store
	embedder embedder.Embedder
	workers  int

	mu       sync.Mutex
	projects map[string]*projectState
}

// projectState serializes index runs for one project.
type projectState struct {
	mu    sync.Mutex
	loop  indexLock
	dirty chan struct{} // buffered(1), signals a queued re-run
}

// Stats summarizes one index run.
type Stats struct {
	ChunksIndexed int
	FilesChunked  int
	Duration      time.Duration
}

// New creates an Indexer over the given store and embedder.
func New(store storage.Store, emb embedder.Embedder) *Indexer {
	return &Indexer{
		store:    store,
		embedder: emb,
		workers:  DefaultEmbedWorkers,
		projects: make(map[string]*projectState),
	}
}

func (idx *Indexer) state(projectID string) *projectState {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	st, ok := idx.projects[projectID]
	if !ok {
		st = &projectState{dirty: make(chan struct{}, 1)}
		idx.projects[projectID] = st
	}
	return st
}

// Index rebuilds the chunk index for a project from its stored contents.
// The previous index is dropped wholesale and replaced; an empty project
// clears nothing and reports zero chunks. Concurrent calls for the same
// project block until the earlier run finishes.
func (idx *Indexer) Index(ctx context.Context, projectID string) (*Stats, error) {
	st := idx.state(projectID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return idx.runIndex(ctx, projectID)
}

func (idx *Indexer) runIndex(ctx context.Context, projectID string) (*Stats, error) {
	start := time.Now()

	project, err := idx.store.GetProject(ctx, projectID)
	if err != nil {
		if storageNotFound(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrProjectNotFound, projectID)
		}
		return nil, fmt.Errorf("%w: load project: %v", types.ErrStorage, err)
	}

	chunks := chunker.ChunkProject(project.FileContents)
	if len(chunks) == 0 {
		// Nothing to index; leave any existing rows untouched.
		return &Stats{Duration: time.Since(start)}, nil
	}

	vectors, err := idx.embedAll(ctx, chunks)
	if err != nil {
		return nil, err
	}

	records := make([]*storage.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &storage.ChunkRecord{
			ProjectID:  projectID,
			FilePath:   chunk.FilePath,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			Vector:     vectors[i],
		}
	}

	// Replace rows only after every embedding succeeded, so a provider
	// failure never leaves the project half indexed.
	if err := idx.store.DeleteChunks(ctx, projectID); err != nil {
		return nil, fmt.Errorf("%w: clear chunks: %v", types.ErrStorage, err)
	}
	for offset := 0; offset < len(records); offset += InsertBatchSize {
		end := offset + InsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := idx.store.InsertChunks(ctx, records[offset:end]); err != nil {
			return nil, fmt.Errorf("%w: insert chunks: %v", types.ErrStorage, err)
		}
	}

	files := make(map[string]struct{})
	for _, chunk := range chunks {
		files[chunk.FilePath] = struct{}{}
	}
	return &Stats{
		ChunksIndexed: len(chunks),
		FilesChunked:  len(files),
		Duration:      time.Since(start),
	}, nil
}

// embedAll embeds every chunk's content in provider-sized batches, with a
// bounded number of requests in flight. Results land at their chunk's
// offset, so ordering is preserved regardless of completion order.
func (idx *Indexer) embedAll(ctx context.Context, chunks []types.CodeChunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.workers)

	for offset := 0; offset < len(chunks); offset += EmbedBatchSize {
		start := offset
		end := offset + EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		g.Go(func() error {
			texts := make([]string, end-start)
			for i := start; i < end; i++ {
				texts[i-start] = chunks[i].Content
			}
			embeddings, err := idx.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return fmt.Errorf("%w: batch at %d: %v", types.ErrEmbedding, start, err)
			}
			if len(embeddings) != len(texts) {
				return fmt.Errorf("%w: batch at %d: got %d embeddings for %d texts",
					types.ErrEmbedding, start, len(embeddings), len(texts))
			}
			for i, emb := range embeddings {
				vectors[start+i] = emb.Vector
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func storageNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
