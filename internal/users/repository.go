// Package users specializes the generic repository for the User entity:
// iteration order is fixed to the display name, users can be looked up by
// login, and updates recover from stale caller-held ids via the login.
package users

import (
	"context"

	"github.com/ebogdanov/userstore/internal/models"
	"github.com/ebogdanov/userstore/internal/repository"
)

// Repository is the user-facing repository contract: generic CRUD plus a
// secondary lookup by the unique login handle.
type Repository interface {
	repository.Repository[*models.User]
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
