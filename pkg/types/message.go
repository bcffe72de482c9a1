package types

// Role of a chat message in the workspace transcript.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// ChatMessage is one transcript entry. While an answer streams, the ai
// message's Content is mutated in place until the stream ends.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatTurn is one history entry forwarded to the chat endpoint. Role uses
// the generation collaborator's vocabulary ("user"/"assistant"); anything
// else is dropped during prompt assembly.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CurrentFile is the optional currently-open-file context sent alongside a
// question so answers can reference the file the user is looking at.
type CurrentFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
