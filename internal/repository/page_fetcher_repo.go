package repository

import (
	"context"

	"github.com/user/salesbot-service/internal/domain"
)

// PageFetcher defines the contract for retrieving a landing page document.
type PageFetcher interface {
	// Fetch retrieves the document behind url. FinalURL is set to the
	// post-redirect location when the strategy tracks redirects.
	Fetch(ctx context.Context, url string) (*domain.Page, error)
	// Name identifies the strategy in logs and metrics.
	Name() string
}
