package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/salesbot-service/internal/domain"
)

func msg(role domain.Role, text string) domain.Message {
	return domain.Message{Role: role, Text: text, Timestamp: time.Now()}
}

func TestSessionStore_KeepsMostRecent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		_, err := store.Append(ctx, "s1", msg(domain.RoleUser, fmt.Sprintf("m%d", i)))
		require.NoError(t, err)
	}

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, domain.MaxHistory)
	assert.Equal(t, "m6", history[0].Text)
	assert.Equal(t, "m15", history[9].Text)
}

func TestSessionStore_AppendReturnsHistory(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, err := store.Append(ctx, "s1", msg(domain.RoleUser, "oi"))
	require.NoError(t, err)
	history, err := store.Append(ctx, "s1", msg(domain.RoleAgent, "olá"))
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, domain.RoleAgent, history[1].Role)

	// Callers get a copy.
	history[0].Text = "changed"
	stored, _ := store.History(ctx, "s1")
	assert.Equal(t, "oi", stored[0].Text)
}

func TestSessionStore_Independent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	_, _ = store.Append(ctx, "a", msg(domain.RoleUser, "from a"))
	_, _ = store.Append(ctx, "b", msg(domain.RoleUser, "from b"))

	a, _ := store.History(ctx, "a")
	b, _ := store.History(ctx, "b")
	unknown, _ := store.History(ctx, "c")

	assert.Equal(t, "from a", a[0].Text)
	assert.Equal(t, "from b", b[0].Text)
	assert.Empty(t, unknown)
}

func TestSessionStore_Concurrent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Append(ctx, "shared", msg(domain.RoleUser, fmt.Sprintf("m%d", i)))
		}(i)
	}
	wg.Wait()

	history, _ := store.History(ctx, "shared")
	assert.Len(t, history, domain.MaxHistory)
}
