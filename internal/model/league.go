package model

// Roster ties a roster slot to its owning account for one league-year.
// Roster ids are stable within a year only; owner ids are stable
// league-wide.
type Roster struct {
	RosterID int    `json:"roster_id"`
	OwnerID  string `json:"owner_id"`
}

// User is a league member's account for one league-year.
type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Draft is a season's draft metadata. DraftOrder maps owner id to
// draft-slot position.
type Draft struct {
	DraftID    string         `json:"draft_id"`
	Season     string         `json:"season"`
	DraftOrder map[string]int `json:"draft_order"`
}

// PickMetadata carries the selected player's identity on a realized
// draft pick.
type PickMetadata struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

// PickRecord is the realized outcome of one draft slot: who was taken
// at (round, draft_slot) in a season's draft.
type PickRecord struct {
	Round     int          `json:"round"`
	DraftSlot int          `json:"draft_slot"`
	Metadata  PickMetadata `json:"metadata"`
}
