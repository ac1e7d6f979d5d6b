// Package trades turns a season's raw transaction list into the
// formatted trade log: which teams swapped what, what traded picks
// turned into, and how the players scored after the deal.
package trades

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/league"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

// separator closes every trade block.
var separator = strings.Repeat("-", 104)

// RefSet bundles the reference data one narration pass joins over.
// All of it is read-only during narration.
type RefSet struct {
	Directory *league.Directory
	Players   model.PlayerDirectory
	Stats     model.StatIndex
	Drafts    map[string]*model.Draft
	Picks     map[string][]model.PickRecord
}

// Narrator renders trade blocks for a selected franchise.
type Narrator struct {
	franchises league.Franchises
	enrich     bool
}

// NewNarrator creates a Narrator. With enrich set, player asset lines
// carry the scoring summary computed relative to the trade week.
func NewNarrator(franchises league.Franchises, enrich bool) *Narrator {
	return &Narrator{franchises: franchises, enrich: enrich}
}

// Narrate renders the full trade log for (year, team): one block per
// qualifying trade, in the transactions' original order, joined into
// the final text.
func (n *Narrator) Narrate(year int, team string, txs []model.Transaction, ref RefSet) string {
	return strings.Join(n.Blocks(year, team, txs, ref), "")
}

// Blocks renders one formatted block per trade involving the selected
// franchise. Block order matches the input transaction order; there is
// no resort by week or date.
func (n *Narrator) Blocks(year int, team string, txs []model.Transaction, ref RefSet) []string {
	var blocks []string
	for _, tx := range txs {
		if tx.Type != model.TransactionTypeTrade {
			continue
		}

		involved := make([]string, 0, len(tx.RosterIDs))
		for _, rosterID := range tx.RosterIDs {
			involved = append(involved, ref.Directory.DisplayName(rosterID))
		}
		if !n.franchises.Involved(team, involved) {
			// Most trades don't involve the selected team.
			continue
		}

		blocks = append(blocks, n.renderTrade(year, tx, involved, ref))
	}
	return blocks
}

func (n *Narrator) renderTrade(year int, tx model.Transaction, involved []string, ref RefSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Week %d %d - Teams Involved:  ", tx.Leg, year)
	for _, name := range involved {
		b.WriteString(name)
		b.WriteString("  ")
	}
	b.WriteString("\n")

	detail := model.NewTradeDetail()

	for _, playerID := range sortedAddKeys(tx.Adds) {
		rosterID := tx.Adds[playerID]
		player, ok := ref.Players.Lookup(playerID)
		if !ok {
			fmt.Fprintf(&b, "Player ID %s not found in player data.\n", playerID)
			zap.L().Debug("player missing from directory",
				zap.String("player_id", playerID),
				zap.Int("year", year),
				zap.Int("week", tx.Leg),
			)
			continue
		}

		item := player.Label()
		if n.enrich {
			item += " " + n.playerValue(playerID, year, tx.Leg, ref)
		}
		detail.Add(rosterID, ref.Directory.DisplayName(rosterID), item)
	}

	for _, pick := range tx.DraftPicks {
		item := TracePick(pick, ref.Directory, ref.Drafts, ref.Picks, ref.Players)
		detail.Add(pick.OwnerID, ref.Directory.DisplayName(pick.OwnerID), item)
	}

	for _, team := range detail.Teams() {
		fmt.Fprintf(&b, "\nTeam %s:\n", team.Team)
		for _, item := range team.Items {
			fmt.Fprintf(&b, " - %s\n", item)
		}
	}

	b.WriteString(separator)
	b.WriteString("\n")
	return b.String()
}

func (n *Narrator) playerValue(playerID string, year, week int, ref RefSet) string {
	summary, ok := Aggregate(playerID, year, week, ref.Stats)
	if !ok {
		zap.L().Debug("no scoring data for traded player",
			zap.String("player_id", playerID),
		)
		return "[no scoring data]"
	}
	return formatValue(summary)
}

// sortedAddKeys iterates adds deterministically. The wire format is a
// JSON object, so there is no meaningful source order to preserve;
// canonical-id sort keeps output stable across runs.
func sortedAddKeys(adds map[string]int) []string {
	keys := make([]string, 0, len(adds))
	for k := range adds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := model.CanonicalID(keys[i]), model.CanonicalID(keys[j])
		if len(a) != len(b) && isNumeric(a) && isNumeric(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return keys
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
