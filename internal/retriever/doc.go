// Package retriever embeds a query and ranks a project's indexed chunks
// by cosine similarity, applying a relevance threshold and a result cap.
package retriever
