// Package refdata loads the per-season reference bundles the narrator
// joins over: rosters, users, drafts, realized picks, transactions,
// weekly scoring, and the process-wide player directory. Every unit is
// cached through the payload store across runs and computed at most
// once per key within a process.
package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/config"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/store"
	"github.com/praveen-a14/fantasy-trade-analyzer/pkg/sleeper"
)

// Bundle is one league-year's reference data. A unit whose fetch
// failed is present but empty; narration degrades instead of aborting.
type Bundle struct {
	Year         int
	Rosters      []model.Roster
	Users        []model.User
	Transactions []model.Transaction
}

// DraftData is the league's draft history keyed by season: draft
// metadata and realized pick records for every season a draft is
// configured for. Seasons traded years in advance are simply absent
// until their draft exists.
type DraftData struct {
	Drafts map[string]*model.Draft
	Picks  map[string][]model.PickRecord
}

// Loader populates and memoizes reference data. Safe for concurrent
// use; concurrent requests for the same uncached key block on a single
// computation.
type Loader struct {
	client sleeper.Client
	cache  store.Store
	cfg    config.SleeperConfig
	league config.LeagueConfig

	group singleflight.Group

	mu      sync.RWMutex
	players model.PlayerDirectory
	bundles map[int]*Bundle
	drafts  *DraftData
	stats   model.StatIndex
}

// NewLoader creates a Loader over the given Sleeper client and payload
// cache.
func NewLoader(client sleeper.Client, cache store.Store, cfg config.SleeperConfig, league config.LeagueConfig) *Loader {
	return &Loader{
		client:  client,
		cache:   cache,
		cfg:     cfg,
		league:  league,
		bundles: make(map[int]*Bundle),
	}
}

// cacheThrough returns the cached payload for (kind, key) or fetches,
// stores, and returns it. Store write failures are logged, not fatal:
// the cache is an optimization, never a correctness dependency.
func cacheThrough[T any](ctx context.Context, l *Loader, kind, key string, fetch func(context.Context) (T, error)) (T, error) {
	var out T

	if blob, err := l.cache.Get(ctx, kind, key); err != nil {
		zap.L().Warn("payload cache read failed",
			zap.String("kind", kind),
			zap.String("key", key),
			zap.Error(err),
		)
	} else if blob != nil {
		if err := json.Unmarshal(blob, &out); err == nil {
			return out, nil
		}
		zap.L().Warn("discarding undecodable cache entry",
			zap.String("kind", kind),
			zap.String("key", key),
		)
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}

	if blob, err := json.Marshal(out); err == nil {
		if err := l.cache.Put(ctx, kind, key, blob); err != nil {
			zap.L().Warn("payload cache write failed",
				zap.String("kind", kind),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	return out, nil
}

// Players returns the NFL player directory, loading it at most once
// per process.
func (l *Loader) Players(ctx context.Context) (model.PlayerDirectory, error) {
	l.mu.RLock()
	if l.players != nil {
		defer l.mu.RUnlock()
		return l.players, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("players", func() (any, error) {
		raw, err := cacheThrough(ctx, l, store.KindPlayers, "nfl", l.client.Players)
		if err != nil {
			return nil, err
		}
		dir := model.PlayerDirectory(raw)
		l.mu.Lock()
		l.players = dir
		l.mu.Unlock()
		return dir, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(model.PlayerDirectory), nil
}

// Bundle returns one league-year's rosters, users, and transactions.
// A failed unit is logged and left empty; the bundle itself always
// loads.
func (l *Loader) Bundle(ctx context.Context, year int) (*Bundle, error) {
	l.mu.RLock()
	if b, ok := l.bundles[year]; ok {
		l.mu.RUnlock()
		return b, nil
	}
	l.mu.RUnlock()

	key := strconv.Itoa(year)
	v, err, _ := l.group.Do("bundle/"+key, func() (any, error) {
		leagueID, ok := l.cfg.Leagues[key]
		if !ok {
			return nil, eris.Errorf("refdata: no league configured for season %d", year)
		}
		b := l.loadBundle(ctx, year, leagueID)
		l.mu.Lock()
		l.bundles[year] = b
		l.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Bundle), nil
}

func (l *Loader) loadBundle(ctx context.Context, year int, leagueID string) *Bundle {
	b := &Bundle{Year: year}
	key := strconv.Itoa(year)

	var err error
	b.Rosters, err = cacheThrough(ctx, l, store.KindRosters, key, func(ctx context.Context) ([]model.Roster, error) {
		return l.client.Rosters(ctx, leagueID)
	})
	if err != nil {
		logSkippedUnit(store.KindRosters, key, err)
	}

	b.Users, err = cacheThrough(ctx, l, store.KindUsers, key, func(ctx context.Context) ([]model.User, error) {
		return l.client.Users(ctx, leagueID)
	})
	if err != nil {
		logSkippedUnit(store.KindUsers, key, err)
	}

	for week := 1; week <= l.league.WeeksPerSeason; week++ {
		weekKey := fmt.Sprintf("%d/%d", year, week)
		txs, err := cacheThrough(ctx, l, store.KindTransactions, weekKey, func(ctx context.Context) ([]model.Transaction, error) {
			return l.client.Transactions(ctx, leagueID, week)
		})
		if err != nil {
			logSkippedUnit(store.KindTransactions, weekKey, err)
			continue
		}
		b.Transactions = append(b.Transactions, txs...)
	}

	return b
}

// DraftHistory returns draft metadata and realized picks for every
// season that has a configured draft.
func (l *Loader) DraftHistory(ctx context.Context) (*DraftData, error) {
	l.mu.RLock()
	if l.drafts != nil {
		defer l.mu.RUnlock()
		return l.drafts, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("drafts", func() (any, error) {
		dd := l.loadDraftHistory(ctx)
		l.mu.Lock()
		l.drafts = dd
		l.mu.Unlock()
		return dd, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DraftData), nil
}

func (l *Loader) loadDraftHistory(ctx context.Context) *DraftData {
	dd := &DraftData{
		Drafts: make(map[string]*model.Draft),
		Picks:  make(map[string][]model.PickRecord),
	}

	for season, draftID := range l.cfg.Drafts {
		leagueID, ok := l.cfg.Leagues[season]
		if !ok {
			continue
		}

		drafts, err := cacheThrough(ctx, l, store.KindDraft, season, func(ctx context.Context) ([]model.Draft, error) {
			return l.client.Drafts(ctx, leagueID)
		})
		if err != nil {
			logSkippedUnit(store.KindDraft, season, err)
		} else if len(drafts) > 0 {
			d := drafts[0]
			dd.Drafts[season] = &d
		}

		picks, err := cacheThrough(ctx, l, store.KindPicks, season, func(ctx context.Context) ([]model.PickRecord, error) {
			return l.client.DraftPicks(ctx, draftID)
		})
		if err != nil {
			logSkippedUnit(store.KindPicks, season, err)
			continue
		}
		dd.Picks[season] = picks
	}

	return dd
}

// Stats returns the weekly scoring index across all configured
// seasons. Loaded at most once per process; individual failed weeks
// are logged and skipped.
func (l *Loader) Stats(ctx context.Context) (model.StatIndex, error) {
	l.mu.RLock()
	if l.stats != nil {
		defer l.mu.RUnlock()
		return l.stats, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("stats", func() (any, error) {
		var all []model.WeeklyStat
		for season := l.league.FirstSeason; season <= l.league.LastSeason; season++ {
			for week := 1; week <= l.league.WeeksPerSeason; week++ {
				key := fmt.Sprintf("%d/%d", season, week)
				stats, err := cacheThrough(ctx, l, store.KindStats, key, func(ctx context.Context) ([]model.WeeklyStat, error) {
					return l.client.WeekStats(ctx, season, week)
				})
				if err != nil {
					logSkippedUnit(store.KindStats, key, err)
					continue
				}
				all = append(all, stats...)
			}
		}
		idx := model.BuildStatIndex(all)
		l.mu.Lock()
		l.stats = idx
		l.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(model.StatIndex), nil
}

func logSkippedUnit(kind, key string, err error) {
	zap.L().Warn("fetch failed, treating unit as empty",
		zap.String("kind", kind),
		zap.String("key", key),
		zap.Error(err),
	)
}
