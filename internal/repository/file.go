package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/ebogdanov/userstore/internal/common"
	"github.com/ebogdanov/userstore/internal/logging"
	"github.com/ebogdanov/userstore/internal/store"
)

// Option configures a FileRepository.
type Option[E Entity] func(*FileRepository[E])

// WithSortKey enables auto-sort: every persisted write re-sorts the full
// record set with less, so the on-disk order always reflects it, and GetAll
// returns entities in that order regardless of how the file was edited.
func WithSortKey[E Entity](less func(a, b E) bool) Option[E] {
	return func(r *FileRepository[E]) {
		r.less = less
	}
}

// FileRepository is a Repository backed by a single-file record store.
//
// The model is single-writer and synchronous: every operation performs a
// full file read and/or rewrite and returns only after completion. No
// internal locking is provided; concurrent callers must serialize access
// externally.
type FileRepository[E Entity] struct {
	store     *store.FileStore
	newEntity func() E
	less      func(a, b E) bool
	log       logging.Logger
}

// NewFileRepository ensures the backing file exists, loads it, and repairs
// identifier conflicts, persisting the repaired form if anything changed.
// newEntity allocates a fresh zero entity for decoding.
func NewFileRepository[E Entity](st *store.FileStore, newEntity func() E, log logging.Logger, opts ...Option[E]) (*FileRepository[E], error) {
	r := &FileRepository[E]{
		store:     st,
		newEntity: newEntity,
		log:       log.With("file", st.Path()),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := st.EnsureExists(); err != nil {
		return nil, err
	}
	if err := r.repairOnLoad(); err != nil {
		return nil, err
	}
	return r, nil
}

// repairOnLoad re-establishes id uniqueness once, at construction time,
// tolerating externally edited or corrupted store files.
func (r *FileRepository[E]) repairOnLoad() error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	fixed, changed := store.RepairIDs(records)
	if !changed {
		return nil
	}
	if err := r.persist(fixed); err != nil {
		return err
	}
	r.log.Info(context.Background(), "store file repaired: duplicate or invalid ids reassigned")
	return nil
}

// persist writes the full record set, re-sorting it first when a sort key
// is configured.
func (r *FileRepository[E]) persist(records []store.Record) error {
	if r.less != nil {
		items, err := r.decodeAll(records)
		if err != nil {
			return err
		}
		sort.SliceStable(items, func(i, j int) bool { return r.less(items[i], items[j]) })
		sorted := make([]store.Record, 0, len(items))
		for _, it := range items {
			rec, err := store.Encode(it)
			if err != nil {
				return err
			}
			sorted = append(sorted, rec)
		}
		records = sorted
	}
	return r.store.Save(records)
}

func (r *FileRepository[E]) decodeAll(records []store.Record) ([]E, error) {
	items := make([]E, 0, len(records))
	for _, rec := range records {
		item := r.newEntity()
		if err := store.Decode(rec, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetAll returns every stored entity, ordered by the configured sort key
// when one is set.
func (r *FileRepository[E]) GetAll(ctx context.Context) ([]E, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	items, err := r.decodeAll(records)
	if err != nil {
		return nil, err
	}
	if r.less != nil {
		sort.SliceStable(items, func(i, j int) bool { return r.less(items[i], items[j]) })
	}
	return items, nil
}

// GetByID returns the entity with the given id, or common.ErrorNotFound.
func (r *FileRepository[E]) GetByID(ctx context.Context, id int64) (E, error) {
	var zero E
	records, err := r.store.Load()
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if recID, ok := rec.ID(); ok && recID == id {
			item := r.newEntity()
			if err := store.Decode(rec, item); err != nil {
				return zero, err
			}
			return item, nil
		}
	}
	return zero, common.ErrorNotFound
}

// Add appends the entity and persists immediately. A non-positive id is
// replaced with the next free one; an id colliding with an existing record
// is reassigned to max(existing ids)+1, and the reassignment is reported
// through the logger. The entity's id field reflects the stored value when
// Add returns.
func (r *FileRepository[E]) Add(ctx context.Context, item E) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}

	var maxID int64
	existing := make(map[int64]struct{}, len(records))
	for _, rec := range records {
		if id, ok := rec.ID(); ok && id > 0 {
			existing[id] = struct{}{}
			if id > maxID {
				maxID = id
			}
		}
	}

	id := item.GetID()
	if _, taken := existing[id]; taken {
		r.log.Warn(ctx, "id already exists, reassigning", "id", id, "new_id", maxID+1)
		id = maxID + 1
	} else if id <= 0 {
		id = maxID + 1
	}
	item.SetID(id)

	rec, err := store.Encode(item)
	if err != nil {
		return err
	}
	return r.persist(append(records, rec))
}

// Update replaces the record matching the entity's id and persists. When no
// record matches, the store is left untouched and common.ErrorNotFound is
// returned: updating must never silently create a record.
func (r *FileRepository[E]) Update(ctx context.Context, item E) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if recID, ok := rec.ID(); ok && recID == item.GetID() {
			updated, err := store.Encode(item)
			if err != nil {
				return err
			}
			records[i] = updated
			return r.persist(records)
		}
	}
	return common.ErrorNotFound
}

// Delete removes the record matching the entity's id and persists. Deleting
// an unknown id returns common.ErrorNotFound and leaves the store
// unchanged.
func (r *FileRepository[E]) Delete(ctx context.Context, item E) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := make([]store.Record, 0, len(records))
	for _, rec := range records {
		if recID, ok := rec.ID(); ok && recID == item.GetID() {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) == len(records) {
		return fmt.Errorf("delete id %d: %w", item.GetID(), common.ErrorNotFound)
	}
	return r.persist(kept)
}
