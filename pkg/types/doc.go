// Package types contains the domain types shared across Codeloft: projects
// and their file trees, code chunks produced by the chunker, chat messages,
// and the error taxonomy surfaced by the core services.
package types
