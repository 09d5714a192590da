// Package repository implements generic CRUD over a file-backed record
// store. Identifier uniqueness is re-established on construction and on
// insert; plain reads never mutate the store.
package repository

import "context"

// Entity is implemented by models persisted through a Repository. The
// repository owns identifier assignment: SetID is called when an entity is
// inserted with a missing or conflicting id.
type Entity interface {
	GetID() int64
	SetID(id int64)
}

// Repository is the generic CRUD contract.
//
// Update and Delete refuse to act on unknown ids and report
// common.ErrorNotFound; Update never creates a record. Every mutation is
// fully persisted before the call returns.
type Repository[E Entity] interface {
	GetAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int64) (E, error)
	Add(ctx context.Context, item E) error
	Update(ctx context.Context, item E) error
	Delete(ctx context.Context, item E) error
}
