package repository

import (
	"context"

	"github.com/user/salesbot-service/internal/domain"
)

// ExtractionArchive persists extraction outcomes for later inspection.
type ExtractionArchive interface {
	// SaveSnapshot stores the latest record for facts.SourceURL.
	SaveSnapshot(ctx context.Context, requestedURL string, facts domain.ProductFacts, strategy string) error
	// RecordFailure creates or updates the failure entry for a URL.
	RecordFailure(ctx context.Context, url, reason string) error
	// ClearFailure removes the failure entry, typically after a successful fetch.
	ClearFailure(ctx context.Context, url string) error
}
