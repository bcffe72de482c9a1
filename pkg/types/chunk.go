package types

// CodeChunk is a bounded slice of one file's text, annotated with its source
// path via a header line. Chunks are ephemeral: every indexing run regenerates
// the full chunk set for a project and never updates chunks in place.
type CodeChunk struct {
	FilePath   string
	ChunkIndex int    // 0-based, sequential within one file, not globally unique
	Content    string // header line + text slice
}

// RetrievedChunk is a chunk returned from similarity search, ranked by
// descending similarity on a 0-1 cosine-like scale.
type RetrievedChunk struct {
	FilePath   string
	ChunkIndex int
	Content    string
	Similarity float64
}
