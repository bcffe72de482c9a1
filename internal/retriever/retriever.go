package retriever

import (
	"context"
	"fmt"
	"strings"

	"codeloft/internal/embedder"
	"codeloft/internal/storage"
	"codeloft/pkg/types"
)

const (
	// DefaultThreshold is the minimum cosine similarity for a chunk to be
	// considered relevant.
	DefaultThreshold = 0.3
	// DefaultMaxResults caps how many chunks a query returns.
	DefaultMaxResults = 8
)

// Config tunes retrieval. Zero values fall back to the defaults.
type Config struct {
	Threshold  float64
	MaxResults int
}

func (c Config) withDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
	return c
}

// Retriever answers similarity queries over a project's indexed chunks.
type Retriever struct {
	store    storage.Store
	embedder embedder.Embedder
	config   Config
}

// New creates a Retriever with the given config.
func New(store storage.Store, emb embedder.Embedder, cfg Config) *Retriever {
	return &Retriever{store: store, embedder: emb, config: cfg.withDefaults()}
}

// Retrieve embeds the query and returns the project's most similar chunks,
// best first. An empty result is a valid answer, not an error; it simply
// means nothing in the index cleared the similarity threshold.
func (r *Retriever) Retrieve(ctx context.Context, projectID, query string) ([]types.RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", types.ErrSearch)
	}

	emb, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", types.ErrEmbedding, err)
	}

	matches, err := r.store.SearchChunks(ctx, projectID, emb.Vector, r.config.Threshold, r.config.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSearch, err)
	}

	chunks := make([]types.RetrievedChunk, len(matches))
	for i, m := range matches {
		chunks[i] = types.RetrievedChunk{
			FilePath:   m.FilePath,
			ChunkIndex: m.ChunkIndex,
			Content:    m.Content,
			Similarity: m.Similarity,
		}
	}
	return chunks, nil
}
