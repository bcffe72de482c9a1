// Package generator defines the chat completion contract: a provider
// takes an ordered, role-tagged message list and returns a single-pass
// stream of text deltas. It ships an OpenAI-compatible SSE client and a
// static in-memory stream for tests.
package generator
