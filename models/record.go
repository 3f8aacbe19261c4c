package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// EpochSentinel is the comparison timestamp of a record that carries no
// parsable timestamp. It sorts before every real timestamp.
var EpochSentinel = time.Unix(0, 0).UTC()

// Record is a cached server entity kept as raw JSON fields.
type Record map[string]json.RawMessage

// DerivedKeyKind tells which rule produced a derived key.
type DerivedKeyKind string

const (
	KeyByID              DerivedKeyKind = "id"
	KeyByClientReference DerivedKeyKind = "clientReference"
	KeyByNatural         DerivedKeyKind = "natural"
	KeyBySynthetic       DerivedKeyKind = "synthetic"
)

// DerivedKey identifies a cached record within its entity type.
type DerivedKey struct {
	Kind  DerivedKeyKind
	Value string
}

// String renders the key as kind:value.
func (k DerivedKey) String() string {
	return string(k.Kind) + ":" + k.Value
}

// Scalar returns the textual form of a scalar field. Strings are unquoted,
// numbers and booleans are returned as written. Missing, null, object and
// array values yield ok=false.
func (r Record) Scalar(field string) (string, bool) {
	raw, ok := r[field]
	if !ok {
		return "", false
	}
	return scalar(raw)
}

// Nested returns a scalar field of a nested object, e.g. bin.binId.
func (r Record) Nested(object, field string) (string, bool) {
	raw, ok := r[object]
	if !ok {
		return "", false
	}
	var inner Record
	if err := json.Unmarshal(raw, &inner); err != nil {
		return "", false
	}
	return inner.Scalar(field)
}

// Time parses a string field as RFC3339 (with or without fractions).
func (r Record) Time(field string) (time.Time, bool) {
	s, ok := r.Scalar(field)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Number parses a numeric field.
func (r Record) Number(field string) (float64, bool) {
	raw, ok := r[field]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func scalar(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	case 'n':
		return "", false
	}
	return strings.TrimSpace(string(trimmed)), true
}
