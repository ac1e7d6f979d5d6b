package trades

import (
	"fmt"
	"math"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

// round2 rounds to two decimal places, half away from zero. All
// per-game averages in the log go through this so the choice is made
// once.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Aggregate partitions a player's weekly scoring relative to a trade
// event and reports per-game averages: the rest of the trade season
// (same season, week >= the trade week), all later seasons, and both
// combined. An empty bucket counts as one synthetic zero-point game so
// an unproven asset reports 0.00 PPG over 1 game instead of dividing
// by zero. Returns false when the player has no stat records at all;
// the caller substitutes a not-found marker.
func Aggregate(playerID string, year, week int, stats model.StatIndex) (model.ValueSummary, bool) {
	recs := stats[model.CanonicalID(playerID)]
	if len(recs) == 0 {
		return model.ValueSummary{}, false
	}

	var restPts, futurePts float64
	var restN, futureN int
	for _, s := range recs {
		switch {
		case s.Season == year && s.Week >= week:
			restPts += s.Points
			restN++
		case s.Season > year:
			futurePts += s.Points
			futureN++
		}
	}

	restGames, futureGames := restN, futureN
	if restGames == 0 {
		restGames = 1
	}
	if futureGames == 0 {
		futureGames = 1
	}

	overallGames := restN + futureN
	if overallGames == 0 {
		overallGames = 1
	}

	return model.ValueSummary{
		RestOfSeasonPPG:   round2(restPts / float64(restGames)),
		RestOfSeasonGames: restGames,
		FuturePPG:         round2(futurePts / float64(futureGames)),
		FutureGames:       futureGames,
		OverallPPG:        round2((restPts + futurePts) / float64(overallGames)),
	}, true
}

// formatValue renders a ValueSummary the way enriched asset lines
// carry it.
func formatValue(v model.ValueSummary) string {
	return fmt.Sprintf("[ROS: %.2f PPG over %d GP | Future: %.2f PPG over %d GP | Overall: %.2f PPG]",
		v.RestOfSeasonPPG, v.RestOfSeasonGames, v.FuturePPG, v.FutureGames, v.OverallPPG)
}
