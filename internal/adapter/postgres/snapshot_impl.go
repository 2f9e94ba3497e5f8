package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/user/salesbot-service/internal/domain"
)

// ArchiveRepoImpl provides a concrete implementation for the ExtractionArchive interface using PostgreSQL.
type ArchiveRepoImpl struct {
	db  DB
	now func() time.Time
}

// NewArchiveRepo creates a new instance of ArchiveRepoImpl.
func NewArchiveRepo(db DB) *ArchiveRepoImpl {
	return &ArchiveRepoImpl{db: db, now: time.Now}
}

// SaveSnapshot stores or updates the latest record extracted for a URL.
func (r *ArchiveRepoImpl) SaveSnapshot(ctx context.Context, requestedURL string, facts domain.ProductFacts, strategy string) error {
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO product_snapshots (requested_url, source_url, title, facts, strategy, extracted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (requested_url) DO UPDATE SET
			source_url = EXCLUDED.source_url,
			title = EXCLUDED.title,
			facts = EXCLUDED.facts,
			strategy = EXCLUDED.strategy,
			extracted_at = EXCLUDED.extracted_at;
	`

	_, err = r.db.Exec(ctx, query,
		requestedURL,
		facts.SourceURL,
		facts.Title,
		factsJSON,
		strategy,
		r.now(),
	)
	return err
}
