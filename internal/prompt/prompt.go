package prompt

import (
	"fmt"
	"strings"

	"codeloft/internal/generator"
	"codeloft/pkg/types"
)

// HistoryLimit caps how many prior turns are carried into the prompt.
// Older turns are dropped from the front.
const HistoryLimit = 20

const systemInstructions = `You are an expert coding assistant embedded in a code workspace.
Answer questions about the user's project using the code context provided below.

When you propose code changes, always return complete file contents inside a
fenced code block, and make the first line of the block a comment of the form:
// file: path/to/file.ext
Use the comment style of the block's language for that marker. Without the
marker the change cannot be applied to the workspace.

Keep answers concise and grounded in the provided context. If the context does
not cover the question, say so rather than guessing.`

// Build assembles the chat messages for one question: system instructions
// with the active file and retrieved context folded in, then the capped
// conversation history, then the question itself.
func Build(question string, chunks []types.RetrievedChunk, current *types.CurrentFile, history []types.ChatTurn) []generator.Message {
	var system strings.Builder
	system.WriteString(systemInstructions)

	if current != nil && current.Path != "" {
		system.WriteString("\n\n## Current File\n\n")
		system.WriteString(fmt.Sprintf("The user is editing `%s`:\n\n", current.Path))
		system.WriteString("```")
		system.WriteString(types.LanguageForPath(current.Path))
		system.WriteString("\n")
		system.WriteString(current.Content)
		if !strings.HasSuffix(current.Content, "\n") {
			system.WriteString("\n")
		}
		system.WriteString("```")
	}

	if len(chunks) > 0 {
		system.WriteString("\n\n## Code Context\n\n")
		system.WriteString("Relevant code from elsewhere in the project:\n\n")
		parts := make([]string, len(chunks))
		for i, chunk := range chunks {
			parts[i] = chunk.Content
		}
		system.WriteString(strings.Join(parts, "\n\n---\n\n"))
	}

	messages := []generator.Message{
		{Role: generator.RoleSystem, Content: system.String()},
	}
	for _, turn := range capHistory(history) {
		messages = append(messages, generator.Message{
			Role:    generator.Role(turn.Role),
			Content: turn.Content,
		})
	}
	messages = append(messages, generator.Message{
		Role:    generator.RoleUser,
		Content: question,
	})
	return messages
}

// capHistory keeps the most recent HistoryLimit user/assistant turns,
// discarding anything with an unknown role.
func capHistory(history []types.ChatTurn) []types.ChatTurn {
	kept := make([]types.ChatTurn, 0, len(history))
	for _, turn := range history {
		switch generator.Role(turn.Role) {
		case generator.RoleUser, generator.RoleAssistant:
			kept = append(kept, turn)
		}
	}
	if len(kept) > HistoryLimit {
		kept = kept[len(kept)-HistoryLimit:]
	}
	return kept
}
