package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeDetail_PreservesFirstEncounterOrder(t *testing.T) {
	t.Parallel()

	d := NewTradeDetail()
	d.Add(3, "Carol", "asset one")
	d.Add(1, "Alice", "asset two")
	d.Add(3, "Carol", "asset three")
	d.Add(2, "Bob", "asset four")

	teams := d.Teams()
	require.Len(t, teams, 3)
	assert.Equal(t, "Carol", teams[0].Team)
	assert.Equal(t, []string{"asset one", "asset three"}, teams[0].Items)
	assert.Equal(t, "Alice", teams[1].Team)
	assert.Equal(t, "Bob", teams[2].Team)
}

func TestTransaction_MissingOptionalKeysDecodeAbsent(t *testing.T) {
	t.Parallel()

	var tx Transaction
	err := json.Unmarshal([]byte(`{"type":"trade","leg":5,"roster_ids":[1,2]}`), &tx)
	require.NoError(t, err)

	assert.Equal(t, TransactionTypeTrade, tx.Type)
	assert.Nil(t, tx.Adds)
	assert.Nil(t, tx.DraftPicks)
}
