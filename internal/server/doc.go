// Package server exposes the HTTP API: project CRUD, an indexing
// endpoint returning the chunk count, and a chat endpoint whose response
// body is a raw, incrementally flushed text stream of the answer.
// Saving a project triggers background re-indexing.
package server
