// Package auth orchestrates sign-in and sign-out against the user
// repository and the session store, exposing the current authentication
// state.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebogdanov/userstore/internal/common"
	"github.com/ebogdanov/userstore/internal/logging"
	"github.com/ebogdanov/userstore/internal/models"
	"github.com/ebogdanov/userstore/internal/session"
	"github.com/ebogdanov/userstore/internal/users"
)

// Service is the authentication state machine: Anonymous until a SignIn
// succeeds or a persisted session is restored, Authenticated until SignOut.
//
// Contract:
//   - SignIn reports credential problems (unknown login, wrong password) as
//     false, never as an error; IO failures propagate.
//   - SignOut is idempotent and always clears the persisted session.
//   - IsAuthorized and CurrentUser are pure reads of in-memory state.
//
// One Service per session file per process; no cross-process locking.
type Service interface {
	SignIn(ctx context.Context, login, password string) (bool, error)
	SignOut(ctx context.Context) error
	IsAuthorized() bool
	CurrentUser() *models.User
}

type service struct {
	repo     users.Repository
	sessions session.Store
	current  *models.User
	log      logging.Logger
}

// NewService builds the service and restores authentication state from the
// session store. A session pointing at a user that no longer exists is
// stale: it is discarded for this process but the file is left in place
// until the next explicit sign-out.
func NewService(ctx context.Context, repo users.Repository, sessions session.Store, log logging.Logger) (Service, error) {
	s := &service{repo: repo, sessions: sessions, log: log}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) restore(ctx context.Context) error {
	userID, ok, err := s.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "session points at unknown user, staying anonymous", "user_id", userID)
			return nil
		}
		return fmt.Errorf("resolve session user: %w", err)
	}

	s.current = user
	s.log.Info(ctx, "session restored", "user_id", user.ID, "login", user.Login)
	return nil
}

// SignIn looks the login up, verifies the credential, and on success enters
// Authenticated and persists the session. On an unknown login or a wrong
// password the service returns to Anonymous (the persisted session file is
// left untouched). When persisting a successful sign-in fails the service
// is still authenticated for this process; true is returned together with
// the error so the caller knows the session did not survive it.
func (s *service) SignIn(ctx context.Context, login, password string) (bool, error) {
	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "sign-in failed: unknown login", "login", login)
			s.current = nil
			return false, nil
		}
		return false, err
	}

	if !VerifyPassword(user.Password, password) {
		s.log.Info(ctx, "sign-in failed: wrong password", "login", login)
		s.current = nil
		return false, nil
	}

	s.current = user
	if err := s.sessions.Save(ctx, user.ID); err != nil {
		return true, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info(ctx, "signed in", "user_id", user.ID, "login", login)
	return true, nil
}

// SignOut returns to Anonymous and deletes the session file, regardless of
// prior state.
func (s *service) SignOut(ctx context.Context) error {
	if s.current != nil {
		s.log.Info(ctx, "signed out", "user_id", s.current.ID, "login", s.current.Login)
		s.current = nil
	}
	return s.sessions.Clear(ctx)
}

func (s *service) IsAuthorized() bool { return s.current != nil }

func (s *service) CurrentUser() *models.User { return s.current }
