package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ebogdanov/userstore/internal/common"
	"github.com/ebogdanov/userstore/internal/filex"
	"github.com/ebogdanov/userstore/internal/logging"
)

const tokenFilePerm = 0o600

// Claims carries the standard claims plus the one custom field the session
// round-trips: the signed-in user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenStore keeps the session as a single HS256-signed token in a file.
// Signing makes an externally edited session file fail verification and
// load as "no session" instead of authenticating an arbitrary user.
type TokenStore struct {
	path      string
	secretKey []byte
	validity  time.Duration
	log       logging.Logger
}

var _ Store = (*TokenStore)(nil)

// NewTokenStore builds a TokenStore writing to path. validity bounds the
// token lifetime; zero means issued tokens never expire.
func NewTokenStore(path string, secretKey []byte, validity time.Duration, log logging.Logger) *TokenStore {
	return &TokenStore{
		path:      path,
		secretKey: secretKey,
		validity:  validity,
		log:       log.With("session_file", path),
	}
}

// Save overwrites any previous session with a fresh token for userID.
func (s *TokenStore) Save(ctx context.Context, userID int64) error {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	if s.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.validity))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	if err := filex.WriteAtomic(s.path, []byte(token), tokenFilePerm); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the session file and verifies the token. A missing file means
// no session; so does a token that is expired, tampered with, or otherwise
// unparsable (logged as a warning). Read failures other than absence
// propagate.
func (s *TokenStore) Load(ctx context.Context) (int64, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read session: %w", err)
	}

	userID, err := s.parseToken(strings.TrimSpace(string(b)))
	if err != nil {
		s.log.Warn(ctx, "stored session token rejected, treating as no session", "error", err)
		return 0, false, nil
	}
	return userID, true, nil
}

func (s *TokenStore) parseToken(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, common.ErrInvalidToken
	}
	return claims.UserID, nil
}

// Clear removes the session file. Clearing an already-absent session is not
// an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
