package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/refdata"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/store"
	"github.com/praveen-a14/fantasy-trade-analyzer/pkg/sleeper"
)

// initStore opens the payload cache for the configured driver and runs
// migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initLoader wires the Sleeper client and reference data loader over
// an open store.
func initLoader(st store.Store) *refdata.Loader {
	opts := []sleeper.Option{}
	if cfg.Sleeper.BaseURL != "" {
		opts = append(opts, sleeper.WithBaseURL(cfg.Sleeper.BaseURL))
	}
	if cfg.Sleeper.TimeoutSecs > 0 {
		opts = append(opts, sleeper.WithHTTPClient(newHTTPClient(time.Duration(cfg.Sleeper.TimeoutSecs)*time.Second)))
	}
	client := sleeper.NewClient(opts...)
	return refdata.NewLoader(client, st, cfg.Sleeper, cfg.League)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
