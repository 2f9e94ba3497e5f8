package repository

import (
	"context"

	"github.com/user/salesbot-service/internal/domain"
)

// SessionRepository keeps the bounded message history of each conversation.
type SessionRepository interface {
	// Append adds msg to the session, evicting the oldest entries beyond
	// domain.MaxHistory, and returns the resulting history in order.
	Append(ctx context.Context, sessionID string, msg domain.Message) ([]domain.Message, error)
	// History returns the session entries in order; an unknown session is empty.
	History(ctx context.Context, sessionID string) ([]domain.Message, error)
}
