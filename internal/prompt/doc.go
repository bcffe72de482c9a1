// Package prompt assembles the message list for a chat completion:
// system instructions carrying the active file and retrieved code context,
// the capped conversation history, and the user's question.
package prompt
