// Package mcp exposes the indexing, search, and question-answering core
// as Model Context Protocol tools over stdio.
//
// Tools:
//   - index_project: rebuild a project's semantic index
//   - search_project: similarity search over indexed chunks
//   - ask_question: retrieval-grounded answer generation
//   - list_projects: enumerate stored projects
//
// Errors follow JSON-RPC conventions: -32602 for invalid parameters,
// -32603 for internal failures, -32001 for unknown project ids.
package mcp
