package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs. Kept as an
// interface so tests can substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool, for deployments where
// the cache is shared between the CLI and the serve mode.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS payload_cache (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	cache_key  TEXT NOT NULL,
	blob       TEXT NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (kind, cache_key)
);

CREATE INDEX IF NOT EXISTS idx_payload_cache_kind ON payload_cache(kind);
`

// Migrate creates the schema idempotently.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Get(ctx context.Context, kind, key string) ([]byte, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT blob FROM payload_cache WHERE kind = $1 AND cache_key = $2`,
		kind, key,
	)

	var blob string
	err := row.Scan(&blob)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get payload")
	}
	return []byte(blob), nil
}

func (s *PostgresStore) Put(ctx context.Context, kind, key string, blob []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO payload_cache (id, kind, cache_key, blob, fetched_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (kind, cache_key) DO UPDATE SET blob = EXCLUDED.blob, fetched_at = EXCLUDED.fetched_at`,
		uuid.New().String(), kind, key, string(blob), time.Now().UTC(),
	)
	return eris.Wrap(err, "postgres: put payload")
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
