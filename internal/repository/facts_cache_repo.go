package repository

import (
	"context"

	"github.com/user/salesbot-service/internal/domain"
)

// FactsCache stores extracted records keyed by source URL for a fixed TTL.
type FactsCache interface {
	// Get returns ErrCacheMiss when the key was never stored or has expired.
	Get(ctx context.Context, key string) (domain.ProductFacts, error)
	// Put stores facts under key, replacing any previous entry.
	Put(ctx context.Context, key string, facts domain.ProductFacts) error
}
