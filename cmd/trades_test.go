package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/config"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/refdata"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/store"
	"github.com/praveen-a14/fantasy-trade-analyzer/pkg/sleeper"
)

// newFakeSleeper serves a minimal but complete league: two rosters,
// one trade in week 5, a realized 2023 draft, and two stat weeks.
func newFakeSleeper(t *testing.T) *httptest.Server {
	t.Helper()

	payloads := map[string]string{
		"/players/nfl": `{
			"1001": {"player_id":"1001","first_name":"Jane","last_name":"Doe","position":"RB"},
			"2002": {"player_id":"2002","first_name":"John","last_name":"Smith","position":"WR"}
		}`,
		"/league/L1/rosters": `[
			{"roster_id":1,"owner_id":"u-alice"},
			{"roster_id":2,"owner_id":"u-bob"}
		]`,
		"/league/L1/users": `[
			{"user_id":"u-alice","display_name":"Alice"},
			{"user_id":"u-bob","display_name":"Bob"}
		]`,
		"/league/L1/drafts": `[
			{"draft_id":"D1","season":"2023","draft_order":{"u-alice":1,"u-bob":2}}
		]`,
		"/draft/D1/picks": `[
			{"round":1,"draft_slot":1,"metadata":{"player_id":"2002","first_name":"John","last_name":"Smith","position":"WR"}}
		]`,
		"/league/L1/transactions/5": `[
			{"type":"trade","leg":5,"roster_ids":[1,2],
			 "adds":{"1001":1},
			 "draft_picks":[{"season":"2023","round":1,"roster_id":1,"owner_id":2},
			                {"season":"2026","round":2,"roster_id":2,"owner_id":1}]}
		]`,
		"/stats/nfl/regular/2023/5": `{"1001":{"pts_ppr":10.0}}`,
		"/stats/nfl/regular/2023/6": `{"1001":{"pts_ppr":20.0}}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := payloads[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
			return
		}
		// Anything unscripted is an empty unit.
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderTrades_EndToEnd(t *testing.T) {
	withTestConfig(t)
	cfg.League.FirstSeason = 2023
	cfg.League.LastSeason = 2023
	cfg.League.WeeksPerSeason = 6
	cfg.Sleeper = config.SleeperConfig{
		Leagues: map[string]string{"2023": "L1"},
		Drafts:  map[string]string{"2023": "D1"},
	}

	srv := newFakeSleeper(t)
	ctx := context.Background()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	client := sleeper.NewClient(sleeper.WithBaseURL(srv.URL))
	loader := refdata.NewLoader(client, st, cfg.Sleeper, cfg.League)

	out, err := renderTrades(ctx, loader, 2023, "TeamAlice", true)
	require.NoError(t, err)

	assert.Contains(t, out, "Week 5 2023 - Teams Involved:  Alice  Bob")
	// Jane Doe scored 10 and 20 from week 5 on, with no future seasons.
	assert.Contains(t, out, "Team Alice:\n - Jane Doe (RB) [ROS: 15.00 PPG over 2 GP | Future: 0.00 PPG over 1 GP | Overall: 15.00 PPG]")
	// Alice's 2023 first-rounder resolves to the realized pick.
	assert.Contains(t, out, "Team Bob:\n - 2023 Round 1 Pick (Via Alice) (Became: 1.1 - John Smith (WR))")
	// The 2026 pick has no draft yet and stays unresolved; it lands
	// under Alice after the player asset.
	assert.Contains(t, out, " - 2026 Round 2 Pick (Via Bob)\n")
	assert.NotContains(t, out, "2026 Round 2 Pick (Via Bob) (Became")
}
