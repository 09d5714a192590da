package users

import (
	"context"
	"errors"

	"github.com/ebogdanov/userstore/internal/common"
	"github.com/ebogdanov/userstore/internal/logging"
	"github.com/ebogdanov/userstore/internal/models"
	"github.com/ebogdanov/userstore/internal/repository"
	"github.com/ebogdanov/userstore/internal/store"
)

const loginField = "login"

// FileRepository stores users in a JSON file, always ordered by display
// name ascending on disk and in GetAll results.
type FileRepository struct {
	*repository.FileRepository[*models.User]
	store *store.FileStore
	log   logging.Logger
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(path string, log logging.Logger) (*FileRepository, error) {
	st := store.NewFileStore(path, log)

	base, err := repository.NewFileRepository(st,
		func() *models.User { return &models.User{} },
		log,
		repository.WithSortKey(func(a, b *models.User) bool { return a.Name < b.Name }),
	)
	if err != nil {
		return nil, err
	}

	return &FileRepository{
		FileRepository: base,
		store:          st,
		log:            log.With("file", path),
	}, nil
}

// GetByLogin scans the stored records in file order and returns the first
// user with the given login, or common.ErrorNotFound. Login uniqueness is
// best effort, so duplicates resolve to whichever record comes first.
func (r *FileRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec[loginField] == login {
			u := &models.User{}
			if err := store.Decode(rec, u); err != nil {
				return nil, err
			}
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Update first matches by id like the generic repository. When no record
// has the caller's id, it falls back to a match on login: an authenticated
// caller may hold a stale copy of its own id after an out-of-band repair.
// On a login match the stored id is adopted — the caller's id is never
// trusted during recovery — and the remaining fields are overwritten. With
// no match either way the store is untouched and common.ErrorNotFound is
// returned.
func (r *FileRepository) Update(ctx context.Context, user *models.User) error {
	err := r.FileRepository.Update(ctx, user)
	if err == nil || !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	stored, lookupErr := r.GetByLogin(ctx, user.Login)
	if lookupErr != nil {
		if errors.Is(lookupErr, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return lookupErr
	}

	r.log.Warn(ctx, "update matched by login, adopting stored id",
		"login", user.Login, "caller_id", user.ID, "stored_id", stored.ID)
	user.SetID(stored.ID)
	return r.FileRepository.Update(ctx, user)
}
