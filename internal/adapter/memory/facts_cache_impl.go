package memory

import (
	"context"
	"time"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/repository"
)

// FactsCache keeps extracted records in process memory.
type FactsCache struct {
	store *TTLStore[domain.ProductFacts]
}

// NewFactsCache creates a cache whose entries live for ttl.
func NewFactsCache(ttl time.Duration, clock func() time.Time) *FactsCache {
	return &FactsCache{store: NewTTLStore[domain.ProductFacts](ttl, clock)}
}

func (c *FactsCache) Get(_ context.Context, key string) (domain.ProductFacts, error) {
	facts, ok := c.store.Get(key)
	if !ok {
		return domain.ProductFacts{}, repository.ErrCacheMiss
	}
	return facts, nil
}

func (c *FactsCache) Put(_ context.Context, key string, facts domain.ProductFacts) error {
	c.store.Set(key, facts)
	return nil
}

// RunJanitor removes expired records every interval until ctx is done.
func (c *FactsCache) RunJanitor(ctx context.Context, interval time.Duration) {
	c.store.RunJanitor(ctx, interval)
}
