// Package embedder generates vector embeddings for chunk and question text.
//
// The Embedder interface hides the provider behind an order-preserving batch
// contract: the i-th returned embedding always corresponds to the i-th input
// text, which the indexer depends on when pairing chunks with vectors.
//
// Two providers are included: an OpenAI HTTP provider with retry/backoff,
// and a deterministic local provider for development and tests. Both share
// an LRU cache keyed by the SHA-256 of the input text.
package embedder
