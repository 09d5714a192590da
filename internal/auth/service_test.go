package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebogdanov/userstore/internal/logging"
	"github.com/ebogdanov/userstore/internal/models"
	"github.com/ebogdanov/userstore/internal/session"
	"github.com/ebogdanov/userstore/internal/users"
)

type fixture struct {
	repo        *users.FileRepository
	sessionFile string
	log         logging.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	log := logging.NewDefault()

	repo, err := users.NewFileRepository(filepath.Join(dir, "users.json"), log)
	require.NoError(t, err)

	return &fixture{
		repo:        repo,
		sessionFile: filepath.Join(dir, "session.dat"),
		log:         log,
	}
}

func (f *fixture) sessions() session.Store {
	return session.NewTokenStore(f.sessionFile, []byte("secretKey"), 0, f.log)
}

func (f *fixture) newService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(context.Background(), f.repo, f.sessions(), f.log)
	require.NoError(t, err)
	return svc
}

func (f *fixture) addUser(t *testing.T, name, login, password string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Login: login, Password: password}
	require.NoError(t, f.repo.Add(context.Background(), u))
	return u
}

func TestService_StartsAnonymous(t *testing.T) {
	f := newFixture(t)
	svc := f.newService(t)

	assert.False(t, svc.IsAuthorized())
	assert.Nil(t, svc.CurrentUser())
}

func TestService_SignInRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "Ivan", "ivan", "secret")
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "ivan", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, svc.IsAuthorized())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "ivan", svc.CurrentUser().Login)

	// A fresh service against the same session file restores the state
	// without an explicit sign-in.
	restored := f.newService(t)
	assert.True(t, restored.IsAuthorized())
	assert.Equal(t, "ivan", restored.CurrentUser().Login)
}

func TestService_SignInWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "Ivan", "ivan", "secret")
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "ivan", "wrong")
	require.NoError(t, err, "a credential mismatch is a boolean failure, not an error")
	assert.False(t, ok)
	assert.False(t, svc.IsAuthorized())

	// The session file is untouched by a failed sign-in.
	_, statErr := os.Stat(f.sessionFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestService_SignInUnknownLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "nobody", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, svc.IsAuthorized())
}

func TestService_FailedSignInReturnsToAnonymous(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "Ivan", "ivan", "secret")
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "ivan", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.SignIn(ctx, "ivan", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, svc.IsAuthorized(), "a failed sign-in returns the service to Anonymous")
	assert.Nil(t, svc.CurrentUser())

	// The previously persisted session file is untouched, so a fresh
	// service still restores the last successful sign-in.
	restored := f.newService(t)
	assert.True(t, restored.IsAuthorized())
}

func TestService_SignOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "Ivan", "ivan", "secret")
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "ivan", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.SignOut(ctx))
	assert.False(t, svc.IsAuthorized())
	assert.Nil(t, svc.CurrentUser())

	_, statErr := os.Stat(f.sessionFile)
	assert.True(t, os.IsNotExist(statErr), "sign-out deletes the session file")

	// Idempotent.
	require.NoError(t, svc.SignOut(ctx))

	// And a fresh service stays anonymous.
	fresh := f.newService(t)
	assert.False(t, fresh.IsAuthorized())
}

func TestService_StaleSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "Ivan", "ivan", "secret")
	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "ivan", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	// The user disappears out-of-band while the session file remains.
	require.NoError(t, f.repo.Delete(ctx, u))

	fresh := f.newService(t)
	assert.False(t, fresh.IsAuthorized(), "a session pointing at a deleted user is stale")

	// The stale file is discarded implicitly, not rewritten.
	_, statErr := os.Stat(f.sessionFile)
	assert.NoError(t, statErr, "the stale session file is only removed by an explicit sign-out")
}

func TestService_SignInWithBcryptStoredCredential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	f.addUser(t, "Anna", "anna", hash)

	svc := f.newService(t)

	ok, err := svc.SignIn(ctx, "anna", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.SignIn(ctx, "anna", hash)
	require.NoError(t, err)
	assert.False(t, ok, "the stored hash itself must not authenticate")
}
