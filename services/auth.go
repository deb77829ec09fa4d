package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/crypto"
)

const minPasswordLength = 6

// AuthService is the credential store: it owns user records, password
// hashing/verification, and email uniqueness. It never returns a password
// hash to callers and never mutates a record during verification.
type AuthService struct {
	db        core.UserStorage
	passwords crypto.PasswordHandler

	// decoyHash is verified against when the email is unknown so the two
	// failure paths cost the same and the error cannot be used to enumerate
	// accounts.
	decoyHash string
}

func NewAuthService(db core.UserStorage, passwords crypto.PasswordHandler) *AuthService {
	s := &AuthService{
		db:        db,
		passwords: passwords,
	}
	s.decoyHash, _ = passwords.Hash("warden-decoy-credential")
	return s
}

// Register creates a new user with the default role and returns its identity.
// Duplicate emails fail with core.ErrUserExists regardless of password.
func (s *AuthService) Register(ctx context.Context, email, password string) (*core.Identity, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	// The hash is computed exactly once, here, before the insert. There is no
	// re-hash path anywhere else.
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &core.User{
		Email:        email,
		PasswordHash: hash,
		Role:         core.DefaultRole,
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		// Storage is the uniqueness authority; a concurrent register can lose
		// the race between the check above and the insert.
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.Identity(), nil
}

// Login verifies credentials and returns the identity. Unknown email and
// wrong password are indistinguishable: both fail with
// core.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*core.Identity, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, core.ErrInvalidCredentials
	}

	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			if s.decoyHash != "" {
				_, _ = s.passwords.Verify(password, s.decoyHash)
			}
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := s.passwords.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// FindByID resolves a subject ID to its identity, or core.ErrUserNotFound.
func (s *AuthService) FindByID(ctx context.Context, id string) (*core.Identity, error) {
	user, err := s.db.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Identity(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return core.ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return core.ErrInvalidEmail
	}
	// mail.ParseAddress accepts local domains; require a dot like "example.com".
	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return core.ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return core.ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return core.ErrPasswordTooShort
	}
	return nil
}
