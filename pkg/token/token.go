// Package token implements the signed session credential: an HS256 JWT
// carrying the subject ID and a fixed validity window. Tokens are opaque to
// clients and are never persisted server-side; expiry is the only revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jmolina/warden/core"
)

// DefaultTTL is the fixed validity window for issued tokens.
const DefaultTTL = time.Hour

// Signer issues and verifies session tokens with a process-wide secret.
// The secret is established once at startup and never rotated during the
// process lifetime.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

var _ core.TokenSigner = (*Signer)(nil)

type claims struct {
	jwt.RegisteredClaims
}

// NewSigner creates a Signer. A non-positive ttl falls back to DefaultTTL.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: secret, ttl: ttl}
}

// TTL returns the validity window tokens are issued with. The cookie max-age
// must match this value.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token bound to subjectID, expiring exactly one
// window from now. The window is fixed at creation and not extendable.
func (s *Signer) Issue(subjectID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject ID. Expired
// tokens fail with core.ErrTokenExpired; anything else malformed or tampered
// fails with core.ErrTokenInvalid.
func (s *Signer) Verify(tokenString string) (string, error) {
	c := &claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", core.ErrTokenExpired
		}
		return "", core.ErrTokenInvalid
	}

	if !parsed.Valid || c.Subject == "" {
		return "", core.ErrTokenInvalid
	}

	return c.Subject, nil
}
