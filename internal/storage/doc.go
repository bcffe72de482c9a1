// Package storage persists projects and chunk embeddings in SQLite and
// answers cosine-similarity queries over the stored vectors.
//
// Two build modes select the driver:
//   - default / purego: modernc.org/sqlite, no cgo required
//   - sqlite_vec tag: mattn/go-sqlite3 with cgo, for extension support
//
// Project documents store the file tree and the path-keyed content map as
// JSON text columns. Chunk rows carry their embedding as a little-endian
// float32 BLOB; similarity ranking happens in Go over a linear scan of the
// project's rows.
package storage
