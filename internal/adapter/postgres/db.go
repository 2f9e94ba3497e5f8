package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool used by the repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Connect opens a pool and verifies the connection.
func Connect(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS product_snapshots (
	id            BIGSERIAL PRIMARY KEY,
	requested_url TEXT NOT NULL UNIQUE,
	source_url    TEXT NOT NULL,
	title         TEXT NOT NULL,
	facts         JSONB NOT NULL,
	strategy      TEXT NOT NULL,
	extracted_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS fetch_failures (
	id                     BIGSERIAL PRIMARY KEY,
	url                    TEXT NOT NULL UNIQUE,
	failure_reason         TEXT NOT NULL,
	last_attempt_timestamp TIMESTAMPTZ NOT NULL,
	failure_count          INTEGER NOT NULL DEFAULT 1
);
`

// Migrate creates the archive tables when they do not exist.
func Migrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate archive schema: %w", err)
	}
	return nil
}
