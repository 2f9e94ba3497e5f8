package postgres

import (
	"context"
)

// RecordFailure creates or updates the failure entry for a URL.
// It increments failure_count on conflict.
func (r *ArchiveRepoImpl) RecordFailure(ctx context.Context, url, reason string) error {
	query := `
		INSERT INTO fetch_failures (url, failure_reason, last_attempt_timestamp, failure_count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (url) DO UPDATE SET
			failure_reason = EXCLUDED.failure_reason,
			last_attempt_timestamp = EXCLUDED.last_attempt_timestamp,
			failure_count = fetch_failures.failure_count + 1;
	`
	_, err := r.db.Exec(ctx, query, url, reason, r.now())
	return err
}

// ClearFailure removes a failure entry, typically after a successful fetch.
func (r *ArchiveRepoImpl) ClearFailure(ctx context.Context, url string) error {
	query := `DELETE FROM fetch_failures WHERE url = $1;`
	_, err := r.db.Exec(ctx, query, url)
	return err
}
