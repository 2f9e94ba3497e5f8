package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/user/salesbot-service/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionRepoImpl provides a concrete implementation for the SessionRepository interface using Redis Lists.
// Sessions carry no expiry.
type SessionRepoImpl struct {
	client *redis.Client
}

// NewSessionRepo creates a new instance of SessionRepoImpl.
func NewSessionRepo(client *redis.Client) *SessionRepoImpl {
	return &SessionRepoImpl{client: client}
}

func (r *SessionRepoImpl) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Append pushes msg to the right of the list and trims it to the most recent
// entries in one transaction.
func (r *SessionRepoImpl) Append(ctx context.Context, sessionID string, msg domain.Message) ([]domain.Message, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	key := r.key(sessionID)
	var entries *redis.StringSliceCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, raw)
		pipe.LTrim(ctx, key, -domain.MaxHistory, -1)
		entries = pipe.LRange(ctx, key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeMessages(entries.Val())
}

// History returns the session entries, oldest first.
func (r *SessionRepoImpl) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	entries, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeMessages(entries)
}

func decodeMessages(entries []string) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(entries))
	for _, e := range entries {
		var msg domain.Message
		if err := json.Unmarshal([]byte(e), &msg); err != nil {
			return nil, fmt.Errorf("decode session entry: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}
