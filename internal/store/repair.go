package store

// RepairIDs re-establishes identifier uniqueness in a record collection
// loaded from an externally editable file. The pass is pure: input records
// are not mutated, output order equals input order, and only id values
// change.
//
// Policy:
//  1. nextID = max(valid positive ids present) + 1, or 1 if none.
//  2. Scan in original order, tracking seen ids.
//  3. A missing, non-positive, or already-seen id is replaced with nextID,
//     which is then incremented.
//  4. A fresh valid id is kept and marked seen.
//
// The second return value reports whether any record changed.
func RepairIDs(records []Record) ([]Record, bool) {
	if len(records) == 0 {
		return records, false
	}

	var nextID int64 = 1
	for _, r := range records {
		if id, ok := r.ID(); ok && id >= nextID {
			nextID = id + 1
		}
	}

	changed := false
	seen := make(map[int64]struct{}, len(records))
	fixed := make([]Record, 0, len(records))

	for _, r := range records {
		c := r.Clone()
		id, ok := c.ID()

		if !ok || id <= 0 {
			c.SetID(nextID)
			seen[nextID] = struct{}{}
			nextID++
			changed = true
		} else if _, dup := seen[id]; dup {
			c.SetID(nextID)
			seen[nextID] = struct{}{}
			nextID++
			changed = true
		} else {
			seen[id] = struct{}{}
		}

		fixed = append(fixed, c)
	}

	return fixed, changed
}
