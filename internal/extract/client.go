package extract

import "context"

// Message is one chat message sent to the language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatClient is the model-transport contract. One completion per turn, no
// retries on the success path; failures are handled by the dialogue layer.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
