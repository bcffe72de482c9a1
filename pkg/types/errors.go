package types

import "errors"

// Error taxonomy for the core services. Callers match with errors.Is;
// services wrap these with fmt.Errorf("%w: ...") to add detail.
var (
	// ErrProjectNotFound is returned for an unknown project id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrEmbedding covers embedding collaborator failures, including a
	// partial batch failure that aborts a whole indexing run.
	ErrEmbedding = errors.New("embedding failed")

	// ErrSearch covers similarity-search failures. Zero matches is not an
	// error; retrieval reports it as an empty result.
	ErrSearch = errors.New("similarity search failed")

	// ErrStorage covers read/write failures against the persistent store.
	ErrStorage = errors.New("storage failure")

	// ErrGeneration covers streaming collaborator failures, including those
	// surfaced mid-stream.
	ErrGeneration = errors.New("generation failed")

	// ErrNoTargetFile is returned by Apply when neither an explicit target
	// path nor an active file can resolve a destination.
	ErrNoTargetFile = errors.New("no target file")
)
