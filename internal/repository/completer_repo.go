package repository

import "context"

// ChatMessage is a single message sent to a completion service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer generates a reply from a system instruction and a message list.
type Completer interface {
	Complete(ctx context.Context, system string, messages []ChatMessage) (string, error)
}
