package memory

import (
	"context"
	"sync"

	"github.com/user/salesbot-service/internal/domain"
)

// SessionStore keeps conversation histories in process memory. Sessions
// never expire.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]domain.Message
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]domain.Message)}
}

func (s *SessionStore) Append(_ context.Context, sessionID string, msg domain.Message) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], msg)
	if len(history) > domain.MaxHistory {
		history = append([]domain.Message(nil), history[len(history)-domain.MaxHistory:]...)
	}
	s.sessions[sessionID] = history

	return cloneMessages(history), nil
}

func (s *SessionStore) History(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneMessages(s.sessions[sessionID]), nil
}

func cloneMessages(history []domain.Message) []domain.Message {
	out := make([]domain.Message, len(history))
	copy(out, history)
	return out
}
