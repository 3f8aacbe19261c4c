package models

import (
	"encoding/json"
	"time"
)

// EntityType names a tracked collection in the delta feed and the client cache.
type EntityType string

const (
	EntityBin         EntityType = "bins"
	EntityPickup      EntityType = "pickups"
	EntityTransaction EntityType = "transactions"
	EntityCollection  EntityType = "collections"
)

// EntityTypes lists every tracked type in cache order.
var EntityTypes = []EntityType{EntityBin, EntityPickup, EntityTransaction, EntityCollection}

// SyncRequest describes a delta query. Since nil means a full snapshot.
type SyncRequest struct {
	UserID int64
	Role   Role
	Since  *time.Time
}

// SyncResponse is the server-side delta payload.
type SyncResponse struct {
	ServerTime   time.Time          `json:"serverTime"`
	Since        *time.Time         `json:"since"`
	Bins         []Bin              `json:"bins"`
	Pickups      []Pickup           `json:"pickups"`
	Transactions []Transaction      `json:"transactions"`
	Collections  []CollectionRecord `json:"collections"`
}

// ServerTimeLayout is RFC3339 with fixed milliseconds, the watermark format.
const ServerTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON renders serverTime with millisecond precision in UTC.
func (r SyncResponse) MarshalJSON() ([]byte, error) {
	type alias SyncResponse
	return json.Marshal(struct {
		ServerTime string `json:"serverTime"`
		alias
	}{
		ServerTime: r.ServerTime.UTC().Format(ServerTimeLayout),
		alias:      alias(r),
	})
}

// SyncUpdates is the client-side view of the delta payload. Entities stay
// opaque records so that fields unknown to this client survive a merge.
type SyncUpdates struct {
	ServerTime   time.Time `json:"serverTime"`
	Bins         []Record  `json:"bins"`
	Pickups      []Record  `json:"pickups"`
	Transactions []Record  `json:"transactions"`
	Collections  []Record  `json:"collections"`
}

// ByType returns the records of t.
func (u SyncUpdates) ByType(t EntityType) []Record {
	switch t {
	case EntityBin:
		return u.Bins
	case EntityPickup:
		return u.Pickups
	case EntityTransaction:
		return u.Transactions
	case EntityCollection:
		return u.Collections
	}
	return nil
}

// SyncCache is the local mirror of server entities, per type.
type SyncCache map[EntityType][]Record

// CacheState is persisted as a single blob so that the cache and the
// watermark are always written together.
type CacheState struct {
	Cache    SyncCache  `json:"cache"`
	LastSync *time.Time `json:"lastSync"`
}

// SyncSnapshot is a read-only copy of the engine state.
type SyncSnapshot struct {
	Cache     SyncCache
	LastSync  *time.Time
	LastError error
	Syncing   bool
}

// Clone returns a deep copy of the cache lists. Records are shared.
func (c SyncCache) Clone() SyncCache {
	out := make(SyncCache, len(c))
	for t, list := range c {
		cp := make([]Record, len(list))
		copy(cp, list)
		out[t] = cp
	}
	return out
}
