package model

import "fmt"

// Player is one entry in the NFL player directory. Immutable reference
// data, keyed by player id, loaded once per process lifetime.
type Player struct {
	ID        string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

// Label renders the player the way trade log lines expect it:
// "First Last (POS)".
func (p Player) Label() string {
	return fmt.Sprintf("%s %s (%s)", p.FirstName, p.LastName, p.Position)
}

// PlayerDirectory indexes players by canonical id.
type PlayerDirectory map[string]Player

// Lookup returns the player for a raw (possibly un-normalized) id.
func (d PlayerDirectory) Lookup(rawID string) (Player, bool) {
	p, ok := d[CanonicalID(rawID)]
	return p, ok
}

// WeeklyStat is one player's fantasy scoring for a single week of a
// season. Many per player; append-only reference data spanning
// multiple seasons.
type WeeklyStat struct {
	PlayerID string  `json:"player_id"`
	Season   int     `json:"season"`
	Week     int     `json:"week"`
	Points   float64 `json:"points"`
}

// StatIndex groups weekly stats by canonical player id.
type StatIndex map[string][]WeeklyStat

// BuildStatIndex indexes a flat stat list by canonical player id.
func BuildStatIndex(stats []WeeklyStat) StatIndex {
	idx := make(StatIndex, len(stats))
	for _, s := range stats {
		id := CanonicalID(s.PlayerID)
		idx[id] = append(idx[id], s)
	}
	return idx
}
