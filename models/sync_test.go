package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncResponse_MarshalJSON_ServerTime(t *testing.T) {
	baku := time.FixedZone("AZT", 4*60*60)
	resp := SyncResponse{
		ServerTime:   time.Date(2026, 3, 14, 13, 30, 15, 123456789, baku),
		Bins:         []Bin{},
		Pickups:      []Pickup{},
		Transactions: []Transaction{},
		Collections:  []CollectionRecord{},
	}

	b, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "2026-03-14T09:30:15.123Z", out["serverTime"])
	assert.Nil(t, out["since"])
	assert.Equal(t, []any{}, out["transactions"])
}

func TestSyncResponse_MarshalJSON_ZeroMillis(t *testing.T) {
	b, err := json.Marshal(SyncResponse{ServerTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Contains(t, string(b), `"serverTime":"2026-01-01T00:00:00.000Z"`)
}

func TestSyncUpdates_ByType(t *testing.T) {
	u := SyncUpdates{
		Bins:        []Record{{}},
		Collections: []Record{{}, {}},
	}

	assert.Len(t, u.ByType(EntityBin), 1)
	assert.Len(t, u.ByType(EntityCollection), 2)
	assert.Empty(t, u.ByType(EntityPickup))
	assert.Nil(t, u.ByType("unknown"))
}
