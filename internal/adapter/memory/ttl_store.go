package memory

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLStore is a thread-safe map whose entries expire after a fixed TTL.
type TTLStore[V any] struct {
	data map[string]entry[V]
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// NewTTLStore creates a store. A nil clock means time.Now.
func NewTTLStore[V any](ttl time.Duration, clock func() time.Time) *TTLStore[V] {
	if clock == nil {
		clock = time.Now
	}
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		ttl:  ttl,
		now:  clock,
	}
}

// Get returns the live value stored under key.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || !s.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, restarting its TTL.
func (s *TTLStore[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry[V]{value: value, expiresAt: s.now().Add(s.ttl)}
}

// Sweep drops expired entries and returns how many were removed.
func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RunJanitor sweeps the store every interval until ctx is done.
func (s *TTLStore[V]) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
