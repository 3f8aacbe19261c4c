package service

import (
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

// keyExtractor derives the cache identity of a record of one entity type.
type keyExtractor func(r models.Record) (models.DerivedKey, bool)

var keyExtractors = map[models.EntityType]keyExtractor{
	models.EntityBin: func(r models.Record) (models.DerivedKey, bool) {
		if key, ok := serverOrClientKey(r); ok {
			return key, true
		}
		if binID, ok := r.Scalar("binId"); ok && binID != "" {
			return models.DerivedKey{Kind: models.KeyByNatural, Value: binID}, true
		}
		return syntheticKey(r, fields(r, "type", "location"))
	},
	models.EntityPickup: func(r models.Record) (models.DerivedKey, bool) {
		if key, ok := serverOrClientKey(r); ok {
			return key, true
		}
		return syntheticKey(r, fields(r, "type", "status", "wasteType", "description"))
	},
	models.EntityTransaction: func(r models.Record) (models.DerivedKey, bool) {
		if key, ok := serverOrClientKey(r); ok {
			return key, true
		}
		return syntheticKey(r, fields(r, "type", "status", "amount"))
	},
	models.EntityCollection: func(r models.Record) (models.DerivedKey, bool) {
		if key, ok := serverOrClientKey(r); ok {
			return key, true
		}
		descriptor := []string{}
		if binID, ok := r.Nested("bin", "binId"); ok && binID != "" {
			descriptor = append(descriptor, binID)
		}
		return syntheticKey(r, append(descriptor, fields(r, "weight")...))
	},
}

// DeriveKey returns the cache identity of r. ok is false for records that
// carry nothing to identify them by.
func DeriveKey(t models.EntityType, r models.Record) (models.DerivedKey, bool) {
	extract, ok := keyExtractors[t]
	if !ok {
		return models.DerivedKey{}, false
	}
	return extract(r)
}

func serverOrClientKey(r models.Record) (models.DerivedKey, bool) {
	if id, ok := r.Scalar("id"); ok && id != "" {
		return models.DerivedKey{Kind: models.KeyByID, Value: id}, true
	}
	if ref, ok := r.Scalar("clientReference"); ok && ref != "" {
		return models.DerivedKey{Kind: models.KeyByClientReference, Value: ref}, true
	}
	return models.DerivedKey{}, false
}

// fields returns the non-empty scalar values of names in order.
func fields(r models.Record, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := r.Scalar(name); ok && v != "" && v != "false" && v != "0" {
			out = append(out, v)
		}
	}
	return out
}

var syntheticTimeFields = []string{"updatedAt", "timestamp", "createdAt", "scheduledDate"}

func syntheticKey(r models.Record, descriptor []string) (models.DerivedKey, bool) {
	var stamp string
	for _, name := range syntheticTimeFields {
		if v, ok := r.Scalar(name); ok && v != "" {
			stamp = v
			break
		}
	}
	if stamp == "" && len(descriptor) == 0 {
		return models.DerivedKey{}, false
	}

	head := strings.Join(descriptor, "-")
	if head == "" {
		head = "item"
	}
	return models.DerivedKey{Kind: models.KeyBySynthetic, Value: head + "-" + stamp}, true
}

var comparisonTimeFields = []string{"updatedAt", "timestamp", "createdAt"}

// ComparisonTime is the first parsable of updatedAt, timestamp and createdAt,
// or [models.EpochSentinel].
func ComparisonTime(r models.Record) time.Time {
	for _, name := range comparisonTimeFields {
		if t, ok := r.Time(name); ok {
			return t
		}
	}
	return models.EpochSentinel
}

// MergeRecords folds incoming into existing. A record replaces its cached
// twin only when it is at least as new, and then only the fields it carries
// are overwritten. The result is sorted newest first; ties keep merge order.
func MergeRecords(t models.EntityType, existing, incoming []models.Record) []models.Record {
	merged := make([]models.Record, 0, len(existing)+len(incoming))
	index := make(map[models.DerivedKey]int, len(existing)+len(incoming))

	for _, r := range existing {
		key, ok := DeriveKey(t, r)
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			merged[i] = r
			continue
		}
		index[key] = len(merged)
		merged = append(merged, r)
	}

	for _, r := range incoming {
		key, ok := DeriveKey(t, r)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, r.Clone())
			continue
		}
		current := merged[i]
		if ComparisonTime(r).Before(ComparisonTime(current)) {
			continue
		}
		merged[i] = overlay(current, r)
	}

	stamps := make(map[int]time.Time, len(merged))
	order := make([]int, len(merged))
	for i, r := range merged {
		order[i] = i
		stamps[i] = ComparisonTime(r)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return stamps[order[a]].After(stamps[order[b]])
	})

	out := make([]models.Record, len(merged))
	for i, j := range order {
		out[i] = merged[j]
	}
	return out
}

func overlay(base, top models.Record) models.Record {
	out := base.Clone()
	for k, v := range top {
		out[k] = v
	}
	return out
}

// MergeUpdates merges every entity type of a delta into cache and returns a
// new cache.
func MergeUpdates(cache models.SyncCache, updates models.SyncUpdates) models.SyncCache {
	out := make(models.SyncCache, len(models.EntityTypes))
	for _, t := range models.EntityTypes {
		out[t] = MergeRecords(t, cache[t], updates.ByType(t))
	}
	return out
}
