package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/repository"
	"github.com/user/salesbot-service/pkg/utils"
)

const factsKeyPrefix = "facts:"

// FactsCacheImpl provides a concrete implementation for the FactsCache interface using Redis.
type FactsCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFactsCache creates a new instance of FactsCacheImpl.
func NewFactsCache(client *redis.Client, ttl time.Duration) *FactsCacheImpl {
	return &FactsCacheImpl{client: client, ttl: ttl}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *FactsCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", factsKeyPrefix, utils.HashURL(url))
}

// Get returns the cached record; expiry is left to Redis.
func (r *FactsCacheImpl) Get(ctx context.Context, url string) (domain.ProductFacts, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ProductFacts{}, repository.ErrCacheMiss
	}
	if err != nil {
		return domain.ProductFacts{}, err
	}

	var facts domain.ProductFacts
	if err := json.Unmarshal(raw, &facts); err != nil {
		return domain.ProductFacts{}, fmt.Errorf("decode cached facts: %w", err)
	}
	return facts, nil
}

// Put stores the record with the configured expiry.
func (r *FactsCacheImpl) Put(ctx context.Context, url string, facts domain.ProductFacts) error {
	raw, err := json.Marshal(facts)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(url), raw, r.ttl).Err()
}
