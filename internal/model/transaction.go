package model

// TransactionTypeTrade is the only transaction type the narrator acts on.
const TransactionTypeTrade = "trade"

// TradedPick describes a future draft pick changing hands inside a
// trade. RosterID is the pick's ORIGINAL slot owner; OwnerID is the
// roster controlling the pick after the trade. Tracing a pick back to
// a drafted player requires the original owner's draft-slot position,
// never the current controller's.
type TradedPick struct {
	Season   string `json:"season"`
	Round    int    `json:"round"`
	RosterID int    `json:"roster_id"`
	OwnerID  int    `json:"owner_id"`
}

// Transaction is one league transaction as reported by the API. Adds
// and DraftPicks are optional in the wire format; a missing key decodes
// to the zero value and is treated as absent.
type Transaction struct {
	Type       string         `json:"type"`
	Leg        int            `json:"leg"`
	RosterIDs  []int          `json:"roster_ids"`
	Adds       map[string]int `json:"adds"`
	DraftPicks []TradedPick   `json:"draft_picks"`
}

// ValueSummary is a player's per-game scoring relative to a trade
// event: the rest of the trade season versus all later seasons. Game
// counts are the guarded values (an empty bucket reports one synthetic
// zero-point game rather than dividing by zero).
type ValueSummary struct {
	RestOfSeasonPPG   float64
	RestOfSeasonGames int
	FuturePPG         float64
	FutureGames       int
	OverallPPG        float64
}

// TeamAssets collects the asset description lines one roster receives
// in a trade.
type TeamAssets struct {
	Team  string
	Items []string
}

// TradeDetail maps receiving roster ids to their acquired assets,
// preserving first-encounter order of the roster ids. Built fresh per
// qualifying transaction, discarded after formatting.
type TradeDetail struct {
	order  []int
	byTeam map[int]*TeamAssets
}

// NewTradeDetail returns an empty detail accumulator.
func NewTradeDetail() *TradeDetail {
	return &TradeDetail{byTeam: make(map[int]*TeamAssets)}
}

// Add appends an asset line under the given receiving roster,
// registering the roster on first encounter.
func (d *TradeDetail) Add(rosterID int, team, item string) {
	ta, ok := d.byTeam[rosterID]
	if !ok {
		ta = &TeamAssets{Team: team}
		d.byTeam[rosterID] = ta
		d.order = append(d.order, rosterID)
	}
	ta.Items = append(ta.Items, item)
}

// Teams returns the per-roster asset groups in first-encounter order.
func (d *TradeDetail) Teams() []*TeamAssets {
	out := make([]*TeamAssets, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byTeam[id])
	}
	return out
}
