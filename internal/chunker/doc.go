// Package chunker divides project files into overlapping line-bounded chunks
// for embedding and similarity search.
//
// Each chunk carries a header naming its source file and, for multi-chunk
// files, its 1-based inclusive line range:
//
//	// internal/server/server.go (lines 181-380)
//
// Consecutive chunks of the same file share an Overlap-line region so code
// split by a window boundary still appears whole in a neighbor. Chunking is
// pure and deterministic, which the indexer relies on for reproducible runs
// and the tests rely on for exact boundary assertions.
package chunker
