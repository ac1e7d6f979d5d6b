package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/league"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List franchise labels and their historical account names",
	RunE: func(cmd *cobra.Command, args []string) error {
		franchises := league.Franchises(cfg.League.Franchises)
		for _, label := range franchises.Labels() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, strings.Join(franchises[label], ", "))
		}
		return nil
	},
}

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List configured seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		for year := cfg.League.FirstSeason; year <= cfg.League.LastSeason; year++ {
			fmt.Fprintln(cmd.OutOrStdout(), year)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(yearsCmd)
}
