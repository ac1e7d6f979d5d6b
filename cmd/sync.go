package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncYear int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Warm the payload cache from the Sleeper API",
	Long:  "Fetches the player directory, rosters, users, drafts, picks, transactions, and weekly stats into the local cache so later renders never hit the network. Units that fail to fetch are logged and skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		loader := initLoader(st)

		players, err := loader.Players(ctx)
		if err != nil {
			return eris.Wrap(err, "sync player directory")
		}
		zap.L().Info("player directory synced", zap.Int("players", len(players)))

		first, last := cfg.League.FirstSeason, cfg.League.LastSeason
		if syncYear != 0 {
			if err := validateSelectionYear(syncYear); err != nil {
				return err
			}
			first, last = syncYear, syncYear
		}

		for year := first; year <= last; year++ {
			bundle, err := loader.Bundle(ctx, year)
			if err != nil {
				zap.L().Warn("season bundle skipped", zap.Int("year", year), zap.Error(err))
				continue
			}
			zap.L().Info("season synced",
				zap.Int("year", year),
				zap.Int("rosters", len(bundle.Rosters)),
				zap.Int("transactions", len(bundle.Transactions)),
			)
		}

		drafts, err := loader.DraftHistory(ctx)
		if err != nil {
			return eris.Wrap(err, "sync draft history")
		}
		zap.L().Info("draft history synced", zap.Int("seasons", len(drafts.Drafts)))

		stats, err := loader.Stats(ctx)
		if err != nil {
			return eris.Wrap(err, "sync weekly stats")
		}
		zap.L().Info("weekly stats synced", zap.Int("players_with_stats", len(stats)))

		return nil
	},
}

func validateSelectionYear(year int) error {
	if year < cfg.League.FirstSeason || year > cfg.League.LastSeason {
		return eris.Errorf("year %d outside configured seasons %d-%d",
			year, cfg.League.FirstSeason, cfg.League.LastSeason)
	}
	return nil
}

func init() {
	syncCmd.Flags().IntVar(&syncYear, "year", 0, "limit the sync to one season")
	rootCmd.AddCommand(syncCmd)
}
