// Package store persists an ordered collection of flat records to a single
// JSON file and repairs identifier conflicts inside a loaded collection.
// It owns no business logic: repositories decide when to load, repair, and
// save.
package store

import (
	"encoding/json"
	"fmt"
)

// IDField is the record key holding the numeric identifier.
const IDField = "id"

// Record is one entity as stored on disk: a flat map of field names to
// scalar values. Collections of records are order-preserving.
type Record map[string]any

// ID returns the record's identifier and whether it holds a valid numeric
// value. JSON numbers decode as float64; integer-typed values are accepted
// too so callers can build records in code.
func (r Record) ID() (int64, bool) {
	switch v := r[IDField].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// SetID assigns the record's identifier.
func (r Record) SetID(id int64) {
	r[IDField] = id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Decode fills v (a pointer to an entity struct) from the record, using the
// entity's JSON field tags.
func Decode(r Record, v any) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Encode converts an entity into its flat record form, using the entity's
// JSON field tags.
func Encode(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return r, nil
}
