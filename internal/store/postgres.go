// Package store persists finished generation run records: seed, params,
// checksum, and stage timings. It never persists intermediate pipeline
// grids, which stay in memory for the lifetime of a single request.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"worldgen-engine/internal/worldgen/export"
)

// Store persists Metadata records to Postgres via a pooled connection.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pooled connection to dsn.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the run-record table if it does not already exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS generation_runs (
			run_id       UUID PRIMARY KEY,
			seed         BIGINT NOT NULL,
			width        INT NOT NULL,
			height       INT NOT NULL,
			checksum     TEXT NOT NULL,
			metadata     JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// SaveRun inserts a finished run's metadata record.
func (s *Store) SaveRun(ctx context.Context, meta export.Metadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO generation_runs (run_id, seed, width, height, checksum, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO NOTHING
	`, meta.RunID, meta.Seed, meta.Width, meta.Height, meta.Checksum, raw)
	return err
}

// PruneOlderThan deletes run records older than cutoff. It is invoked by
// the service's nightly cron job.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM generation_runs WHERE created_at < now() - $1::interval
	`, fmt.Sprintf("%f seconds", cutoff.Seconds()))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
