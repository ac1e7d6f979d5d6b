package trades

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen-a14/fantasy-trade-analyzer/internal/league"
	"github.com/praveen-a14/fantasy-trade-analyzer/internal/model"
)

var testFranchises = league.Franchises{
	"TeamAlice": {"Alice", "OldAlice"},
	"TeamBob":   {"Bob"},
}

func narratorRefSet() RefSet {
	return RefSet{
		Directory: league.NewDirectory(
			[]model.Roster{
				{RosterID: 1, OwnerID: "u-alice"},
				{RosterID: 2, OwnerID: "u-bob"},
			},
			[]model.User{
				{UserID: "u-alice", DisplayName: "Alice"},
				{UserID: "u-bob", DisplayName: "Bob"},
			},
		),
		Players: model.PlayerDirectory{
			"1001": {ID: "1001", FirstName: "Jane", LastName: "Doe", Position: "RB"},
			"2002": {ID: "2002", FirstName: "John", LastName: "Smith", Position: "WR"},
		},
		Stats:  model.StatIndex{},
		Drafts: map[string]*model.Draft{},
		Picks:  map[string][]model.PickRecord{},
	}
}

func TestNarrate_BasicTradeScenario(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       5,
		RosterIDs: []int{1, 2},
		Adds:      map[string]int{"1001": 1},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())

	assert.Contains(t, out, "Week 5 2023 - Teams Involved:  Alice  Bob")
	assert.Contains(t, out, "Team Alice:\n - Jane Doe (RB)")
	assert.Contains(t, out, strings.Repeat("-", 104)+"\n")
}

func TestNarrate_UninvolvedTradesSkippedSilently(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       2,
		RosterIDs: []int{2},
		Adds:      map[string]int{"2002": 2},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())
	assert.Empty(t, out)
}

func TestNarrate_NonTradeTransactionsIgnored(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{{
		Type:      "waiver",
		Leg:       1,
		RosterIDs: []int{1},
		Adds:      map[string]int{"1001": 1},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())
	assert.Empty(t, out)
}

func TestNarrate_MissingPlayerEmitsDiagnosticAndContinues(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       5,
		RosterIDs: []int{1, 2},
		Adds:      map[string]int{"9999": 1, "1001": 2},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())

	assert.Contains(t, out, "Player ID 9999 not found in player data.\n")
	assert.NotContains(t, out, "9999 (")
	// The resolvable asset in the same transaction still renders.
	assert.Contains(t, out, "Team Bob:\n - Jane Doe (RB)")
}

func TestNarrate_PreservesTransactionOrder(t *testing.T) {
	t.Parallel()

	// Week 9 listed before week 2: the log must not resort.
	txs := []model.Transaction{
		{Type: model.TransactionTypeTrade, Leg: 9, RosterIDs: []int{1, 2}, Adds: map[string]int{"1001": 1}},
		{Type: model.TransactionTypeTrade, Leg: 2, RosterIDs: []int{1, 2}, Adds: map[string]int{"2002": 2}},
	}

	blocks := NewNarrator(testFranchises, false).Blocks(2023, "TeamAlice", txs, narratorRefSet())
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Week 9 2023")
	assert.Contains(t, blocks[1], "Week 2 2023")
}

func TestNarrate_TeamBlocksFollowFirstEncounterOrder(t *testing.T) {
	t.Parallel()

	// Bob's roster receives the first asset, so Bob's block renders
	// first even though Alice appears first in roster_ids.
	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       3,
		RosterIDs: []int{1, 2},
		Adds:      map[string]int{"1001": 2, "2002": 1},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())

	bobIdx := strings.Index(out, "Team Bob:")
	aliceIdx := strings.Index(out, "Team Alice:")
	require.GreaterOrEqual(t, bobIdx, 0)
	require.GreaterOrEqual(t, aliceIdx, 0)
	assert.Less(t, bobIdx, aliceIdx)
}

func TestNarrate_UnresolvedPickLine(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       7,
		RosterIDs: []int{1, 2},
		DraftPicks: []model.TradedPick{
			{Season: "2025", Round: 1, RosterID: 1, OwnerID: 2},
		},
	}}

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", txs, narratorRefSet())

	assert.Contains(t, out, "Team Bob:\n - 2025 Round 1 Pick (Via Alice)\n")
	assert.NotContains(t, out, "Became")
}

func TestNarrate_EnrichedPlayerLines(t *testing.T) {
	t.Parallel()

	ref := narratorRefSet()
	ref.Stats = model.BuildStatIndex([]model.WeeklyStat{
		{PlayerID: "1001", Season: 2023, Week: 5, Points: 10},
		{PlayerID: "1001", Season: 2023, Week: 6, Points: 20},
		{PlayerID: "1001", Season: 2024, Week: 1, Points: 8},
	})

	txs := []model.Transaction{{
		Type:      model.TransactionTypeTrade,
		Leg:       5,
		RosterIDs: []int{1, 2},
		Adds:      map[string]int{"1001": 1, "2002": 2},
	}}

	out := NewNarrator(testFranchises, true).Narrate(2023, "TeamAlice", txs, ref)

	assert.Contains(t, out, "Jane Doe (RB) [ROS: 15.00 PPG over 2 GP | Future: 8.00 PPG over 1 GP | Overall: 12.67 PPG]")
	// No stat records at all: not-found marker instead of a summary.
	assert.Contains(t, out, "John Smith (WR) [no scoring data]")
}

func TestNarrate_EmptyTransactionListYieldsEmptyLog(t *testing.T) {
	t.Parallel()

	out := NewNarrator(testFranchises, false).Narrate(2023, "TeamAlice", nil, narratorRefSet())
	assert.Empty(t, out)
}
