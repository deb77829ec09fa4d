package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmolina/warden/core"
	"github.com/jmolina/warden/pkg/crypto"
)

func newTestService(t *testing.T) (*AuthService, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	return NewAuthService(storage, crypto.NewArgon2()), storage
}

// Requirement: Register creates a user with the default role and returns the
// identity, never the hash.
func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*AuthService)
		wantErr  error
	}{
		{
			name:     "creates user for valid input",
			email:    "alice@example.com",
			password: "secret1",
		},
		{
			name:     "normalizes email case",
			email:    "Alice@Example.COM",
			password: "secret1",
		},
		{
			name:     "rejects empty email",
			email:    "",
			password: "secret1",
			wantErr:  core.ErrEmailRequired,
		},
		{
			name:     "rejects malformed email",
			email:    "not-an-address",
			password: "secret1",
			wantErr:  core.ErrInvalidEmail,
		},
		{
			name:     "rejects email without domain dot",
			email:    "alice@localhost",
			password: "secret1",
			wantErr:  core.ErrInvalidEmail,
		},
		{
			name:     "rejects empty password",
			email:    "alice@example.com",
			password: "",
			wantErr:  core.ErrPasswordRequired,
		},
		{
			name:     "rejects short password",
			email:    "alice@example.com",
			password: "abc",
			wantErr:  core.ErrPasswordTooShort,
		},
		{
			name:     "rejects duplicate email regardless of password",
			email:    "alice@example.com",
			password: "another-password",
			setup: func(s *AuthService) {
				if _, err := s.Register(context.Background(), "alice@example.com", "secret1"); err != nil {
					t.Fatalf("setup register: %v", err)
				}
			},
			wantErr: core.ErrUserExists,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			service, _ := newTestService(t)
			if test.setup != nil {
				test.setup(service)
			}

			identity, err := service.Register(context.Background(), test.email, test.password)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if identity.ID == "" {
				t.Error("Register() should assign an ID")
			}
			if identity.Email != strings.ToLower(test.email) {
				t.Errorf("Register() email = %q, want %q", identity.Email, strings.ToLower(test.email))
			}
			if identity.Role != core.RoleUser {
				t.Errorf("Register() role = %q, want %q", identity.Role, core.RoleUser)
			}
		})
	}
}

// Requirement: the stored record carries a salted hash, never the plaintext.
func TestAuthService_Register_NeverStoresPlaintext(t *testing.T) {
	service, storage := newTestService(t)

	identity, err := service.Register(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored, err := storage.GetUserByID(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Error("stored record must contain a hash, not the plaintext")
	}
	if strings.Contains(stored.PasswordHash, "secret1") {
		t.Error("stored hash must not embed the plaintext")
	}
}

// Requirement: Login succeeds for correct credentials and fails with one
// indistinguishable error for unknown email or wrong password.
func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "correct credentials",
			email:    "alice@example.com",
			password: "secret1",
		},
		{
			name:     "case-insensitive email",
			email:    "ALICE@example.com",
			password: "secret1",
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpass",
			wantErr:  core.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret1",
			wantErr:  core.ErrInvalidCredentials,
		},
		{
			name:     "empty email",
			email:    "",
			password: "secret1",
			wantErr:  core.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			service, _ := newTestService(t)
			registered, err := service.Register(context.Background(), "alice@example.com", "secret1")
			if err != nil {
				t.Fatalf("setup register: %v", err)
			}

			identity, err := service.Login(context.Background(), test.email, test.password)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if identity.ID != registered.ID {
				t.Errorf("Login() id = %q, want %q", identity.ID, registered.ID)
			}
		})
	}
}

// Requirement: unknown email and wrong password produce the exact same error
// value, leaving no enumeration signal.
func TestAuthService_Login_NoEnumerationSignal(t *testing.T) {
	service, _ := newTestService(t)
	if _, err := service.Register(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("setup register: %v", err)
	}

	_, errWrongPass := service.Login(context.Background(), "alice@example.com", "wrongpass")
	_, errUnknown := service.Login(context.Background(), "nobody@example.com", "secret1")

	if errWrongPass == nil || errUnknown == nil {
		t.Fatal("both logins should fail")
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Errorf("errors differ: %q vs %q", errWrongPass, errUnknown)
	}
}

// Requirement: FindByID returns the identity or ErrUserNotFound.
func TestAuthService_FindByID(t *testing.T) {
	service, _ := newTestService(t)
	registered, err := service.Register(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("setup register: %v", err)
	}

	identity, err := service.FindByID(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("FindByID() email = %q", identity.Email)
	}

	if _, err := service.FindByID(context.Background(), "missing-id"); !errors.Is(err, core.ErrUserNotFound) {
		t.Errorf("FindByID() error = %v, want ErrUserNotFound", err)
	}
}

// Requirement: storage failures surface as wrapped internal errors, never as
// a credential failure the client could misread.
func TestAuthService_StorageFailure(t *testing.T) {
	boom := errors.New("connection reset")
	storage := &failingStorage{UserStorage: NewMemoryStorage(), getErr: boom}
	service := NewAuthService(storage, crypto.NewArgon2())

	_, err := service.Login(context.Background(), "alice@example.com", "secret1")
	if err == nil {
		t.Fatal("Login() should fail")
	}
	if errors.Is(err, core.ErrInvalidCredentials) {
		t.Error("storage failure must not be reported as invalid credentials")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Login() error = %v, want wrapped %v", err, boom)
	}
}

// Requirement: a register losing the check/insert race still yields ErrUserExists.
func TestAuthService_Register_InsertRace(t *testing.T) {
	storage := &failingStorage{UserStorage: NewMemoryStorage(), createErr: core.ErrUserExists}
	service := NewAuthService(storage, crypto.NewArgon2())

	if _, err := service.Register(context.Background(), "alice@example.com", "secret1"); !errors.Is(err, core.ErrUserExists) {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
}
