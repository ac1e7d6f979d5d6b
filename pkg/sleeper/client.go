// Package sleeper provides a client for the Sleeper fantasy football API.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

// Client defines the Sleeper API operations the analyzer consumes.
type Client interface {
	// Rosters returns the league's rosters for one league-year.
	Rosters(ctx context.Context, leagueID string) ([]model.Roster, error)
	// Users returns the league's member accounts for one league-year.
	Users(ctx context.Context, leagueID string) ([]model.User, error)
	// Drafts returns the league's drafts for one league-year. Sleeper
	// reports a list; the season's draft is the first element.
	Drafts(ctx context.Context, leagueID string) ([]model.Draft, error)
	// DraftPicks returns the realized pick outcomes of a draft.
	DraftPicks(ctx context.Context, draftID string) ([]model.PickRecord, error)
	// Transactions returns one week's transactions for a league.
	Transactions(ctx context.Context, leagueID string, week int) ([]model.Transaction, error)
	// Players returns the full NFL player directory, keyed by player id.
	Players(ctx context.Context) (map[string]model.Player, error)
	// WeekStats returns per-player fantasy scoring for one week of a
	// regular season.
	WeekStats(ctx context.Context, season, week int) ([]model.WeeklyStat, error)
}

// Option configures the Sleeper client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the request rate limiter.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Sleeper API client. Sleeper allows roughly
// 1000 calls per minute per IP; the default limiter stays well under
// that.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://api.sleeper.app/v1",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503). Returns the response body
// on success, or the last error after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, eris.Wrap(readErr, "sleeper: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("sleeper: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("sleeper: status %d: %s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	return nil, lastErr
}

// getJSON fetches a path relative to the base URL and decodes into v.
func (c *httpClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "sleeper: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.retryDo(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return eris.Wrapf(err, "sleeper: decode %s", path)
	}
	return nil
}

func (c *httpClient) Rosters(ctx context.Context, leagueID string) ([]model.Roster, error) {
	var rosters []model.Roster
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

func (c *httpClient) Users(ctx context.Context, leagueID string) ([]model.User, error) {
	var users []model.User
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/users", leagueID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *httpClient) Drafts(ctx context.Context, leagueID string) ([]model.Draft, error) {
	var drafts []model.Draft
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/drafts", leagueID), &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

func (c *httpClient) DraftPicks(ctx context.Context, draftID string) ([]model.PickRecord, error) {
	var picks []model.PickRecord
	if err := c.getJSON(ctx, fmt.Sprintf("/draft/%s/picks", draftID), &picks); err != nil {
		return nil, err
	}
	return picks, nil
}

func (c *httpClient) Transactions(ctx context.Context, leagueID string, week int) ([]model.Transaction, error) {
	var txs []model.Transaction
	if err := c.getJSON(ctx, fmt.Sprintf("/league/%s/transactions/%d", leagueID, week), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *httpClient) Players(ctx context.Context) (map[string]model.Player, error) {
	var raw map[string]model.Player
	if err := c.getJSON(ctx, "/players/nfl", &raw); err != nil {
		return nil, err
	}

	// The map key is authoritative; some directory entries omit the
	// embedded player_id field.
	players := make(map[string]model.Player, len(raw))
	for id, p := range raw {
		canonical := model.CanonicalID(id)
		if p.ID == "" {
			p.ID = canonical
		}
		players[canonical] = p
	}
	return players, nil
}

func (c *httpClient) WeekStats(ctx context.Context, season, week int) ([]model.WeeklyStat, error) {
	var raw map[string]map[string]float64
	path := fmt.Sprintf("/stats/nfl/regular/%d/%d", season, week)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}

	stats := make([]model.WeeklyStat, 0, len(raw))
	for id, line := range raw {
		// Rows without a points key are did-not-play placeholders, not
		// zero-point games.
		pts, ok := line["pts_ppr"]
		if !ok {
			if pts, ok = line["pts_std"]; !ok {
				continue
			}
		}
		stats = append(stats, model.WeeklyStat{
			PlayerID: model.CanonicalID(id),
			Season:   season,
			Week:     week,
			Points:   pts,
		})
	}
	return stats, nil
}
