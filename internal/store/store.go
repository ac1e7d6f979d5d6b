// Package store persists raw Sleeper payloads across process runs so
// the analyzer never refetches data it has already seen. The cache is
// pure key-value with no TTL: freshness is manual, a stale entry is
// never refreshed automatically.
package store

import "context"

// Payload kinds cached by the analyzer.
const (
	KindPlayers      = "players"
	KindRosters      = "rosters"
	KindUsers        = "users"
	KindDraft        = "draft"
	KindPicks        = "picks"
	KindTransactions = "transactions"
	KindStats        = "stats"
)

// Store defines the payload cache interface. Get returns (nil, nil)
// on a cache miss.
type Store interface {
	Get(ctx context.Context, kind, key string) ([]byte, error)
	Put(ctx context.Context, kind, key string, blob []byte) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
