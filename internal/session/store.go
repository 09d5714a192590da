// Package session persists the single "who is signed in" pointer — the
// authenticated user's identifier — in its own file, separate from the
// record store.
package session

import "context"

// Store holds at most one session. Load reports ok=false when no session
// exists (absent file) or the stored token is unusable; that is never an
// error. Clear is idempotent.
type Store interface {
	Load(ctx context.Context) (userID int64, ok bool, err error)
	Save(ctx context.Context, userID int64) error
	Clear(ctx context.Context) error
}
