package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/league"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/refdata"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/trades"
)

var (
	tradesYear   int
	tradesTeam   string
	tradesEnrich bool
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Print the trade log for a franchise and year",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := validateSelection(tradesYear, tradesTeam); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		loader := initLoader(st)
		out, err := renderTrades(ctx, loader, tradesYear, tradesTeam, tradesEnrich)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// validateSelection checks (year, team) against the configured league.
func validateSelection(year int, team string) error {
	if err := validateSelectionYear(year); err != nil {
		return err
	}
	franchises := league.Franchises(cfg.League.Franchises)
	if !franchises.Known(team) {
		return eris.Errorf("unknown team %q (known: %s)",
			team, strings.Join(franchises.Labels(), ", "))
	}
	return nil
}

// renderTrades loads the reference data for one season and narrates
// the selected franchise's trades.
func renderTrades(ctx context.Context, loader *refdata.Loader, year int, team string, enrich bool) (string, error) {
	players, err := loader.Players(ctx)
	if err != nil {
		return "", eris.Wrap(err, "load player directory")
	}

	bundle, err := loader.Bundle(ctx, year)
	if err != nil {
		return "", eris.Wrap(err, "load season bundle")
	}

	drafts, err := loader.DraftHistory(ctx)
	if err != nil {
		return "", eris.Wrap(err, "load draft history")
	}

	stats := model.StatIndex{}
	if enrich {
		stats, err = loader.Stats(ctx)
		if err != nil {
			return "", eris.Wrap(err, "load weekly stats")
		}
	}

	zap.L().Info("reference data loaded",
		zap.Int("year", year),
		zap.Int("players", len(players)),
		zap.Int("transactions", len(bundle.Transactions)),
		zap.Int("drafts", len(drafts.Drafts)),
	)

	narrator := trades.NewNarrator(league.Franchises(cfg.League.Franchises), enrich)
	ref := trades.RefSet{
		Directory: league.NewDirectory(bundle.Rosters, bundle.Users),
		Players:   players,
		Stats:     stats,
		Drafts:    drafts.Drafts,
		Picks:     drafts.Picks,
	}
	return narrator.Narrate(year, team, bundle.Transactions, ref), nil
}

func init() {
	tradesCmd.Flags().IntVar(&tradesYear, "year", 0, "season to render (required)")
	tradesCmd.Flags().StringVar(&tradesTeam, "team", "", "franchise label (required, see 'teams')")
	tradesCmd.Flags().BoolVar(&tradesEnrich, "enrich", false, "append per-game scoring summaries to player assets")
	tradesCmd.MarkFlagRequired("year")
	tradesCmd.MarkFlagRequired("team")
	rootCmd.AddCommand(tradesCmd)
}
