package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS payload_cache (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	cache_key  TEXT NOT NULL,
	blob       TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (kind, cache_key)
);

CREATE INDEX IF NOT EXISTS idx_payload_cache_kind ON payload_cache(kind);
`

// Migrate creates the schema idempotently.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Get(ctx context.Context, kind, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT blob FROM payload_cache WHERE kind = ? AND cache_key = ?`,
		kind, key,
	)

	var blob string
	err := row.Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get payload")
	}
	return []byte(blob), nil
}

func (s *SQLiteStore) Put(ctx context.Context, kind, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payload_cache (id, kind, cache_key, blob, fetched_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (kind, cache_key) DO UPDATE SET blob = excluded.blob, fetched_at = excluded.fetched_at`,
		uuid.New().String(), kind, key, string(blob), time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: put payload")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
