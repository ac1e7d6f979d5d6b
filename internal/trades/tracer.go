package trades

import (
	"fmt"
	"strconv"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/league"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

// TracePick resolves a traded future pick to the player it eventually
// became. Resolution needs the ORIGINAL slot owner's draft position
// (pick.RosterID), not the current controller's. Degradation is
// two-tier: with full draft data and a matching pick record the line
// carries the realized player; with no draft for that season (traded
// years in advance, draft not yet run) it stays an unresolved pick.
func TracePick(
	pick model.TradedPick,
	dir *league.Directory,
	drafts map[string]*model.Draft,
	picks map[string][]model.PickRecord,
	players model.PlayerDirectory,
) string {
	origName := dir.DisplayName(pick.RosterID)
	unresolved := fmt.Sprintf("%s Round %d Pick (Via %s)", pick.Season, pick.Round, origName)

	draft, ok := drafts[pick.Season]
	if !ok || draft == nil {
		return unresolved
	}

	slot := "?"
	slotPos := -1
	if origOwner, ok := dir.OwnerID(pick.RosterID); ok {
		if pos, ok := draft.DraftOrder[origOwner]; ok {
			slot = strconv.Itoa(pos)
			slotPos = pos
		}
	}

	for _, rec := range picks[pick.Season] {
		if rec.Round != pick.Round || rec.DraftSlot != slotPos {
			continue
		}
		name := fmt.Sprintf("%s %s (%s)", rec.Metadata.FirstName, rec.Metadata.LastName, rec.Metadata.Position)
		if p, ok := players.Lookup(rec.Metadata.PlayerID); ok {
			name = p.Label()
		}
		return fmt.Sprintf("%s (Became: %d.%s - %s)", unresolved, pick.Round, slot, name)
	}

	// Draft known but no record matched the (round, slot) pair: keep
	// the unresolved form rather than dropping the asset.
	return unresolved
}
