// Package indexer rebuilds a project's retrieval index from its stored
// file contents.
//
// Pipeline: chunk every file into line windows, embed the chunk texts in
// provider-sized batches, then replace the project's stored rows wholesale
// (delete-then-insert). There is no incremental path; any save invalidates
// the whole index, and the next run rebuilds it from scratch.
//
// Runs for the same project are serialized. TriggerAsync coalesces bursts
// of saves into at most one queued follow-up run.
package indexer
