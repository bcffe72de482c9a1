package workspace

import (
	"github.com/google/uuid"

	"codeloft/pkg/types"
)

// AppendUserMessage adds a user turn to the transcript and returns it.
func (w *Workspace) AppendUserMessage(content string) types.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := types.ChatMessage{
		ID:      uuid.NewString(),
		Role:    types.RoleUser,
		Content: content,
	}
	w.messages = append(w.messages, msg)
	return msg
}

// BeginAIMessage adds an empty ai turn and returns its id. While the
// answer streams, UpdateMessage replaces the turn's content in place.
func (w *Workspace) BeginAIMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := uuid.NewString()
	w.messages = append(w.messages, types.ChatMessage{
		ID:   id,
		Role: types.RoleAI,
	})
	return id
}

// UpdateMessage replaces a message's content. Used as the streaming sink
// for the in-flight ai turn; error notices land the same way.
func (w *Workspace) UpdateMessage(id, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.messages {
		if w.messages[i].ID == id {
			w.messages[i].Content = content
			return
		}
	}
}

// Messages returns a copy of the transcript.
func (w *Workspace) Messages() []types.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]types.ChatMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

// History renders the transcript in the chat endpoint's vocabulary,
// mapping the ai role to assistant. The in-flight empty ai turn, if any,
// is skipped.
func (w *Workspace) History() []types.ChatTurn {
	w.mu.Lock()
	defer w.mu.Unlock()
	turns := make([]types.ChatTurn, 0, len(w.messages))
	for _, msg := range w.messages {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == types.RoleAI {
			role = "assistant"
		}
		turns = append(turns, types.ChatTurn{Role: role, Content: msg.Content})
	}
	return turns
}
