package generator

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNoMessages   = errors.New("no messages provided")
	ErrProviderHTTP = errors.New("generation provider request failed")
)

// Role tags a prompt message for the generation collaborator.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry in the prompt sent to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Stream is a single-pass, non-restartable sequence of text deltas. Recv
// returns done=true after the final delta has been delivered; Close abandons
// the stream and releases the underlying connection.
type Stream interface {
	Recv() (delta string, done bool, err error)
	Close() error
}

// ChatProvider produces a token stream for an ordered message list and a
// completion model identifier.
type ChatProvider interface {
	Stream(ctx context.Context, model string, messages []Message) (Stream, error)
}
