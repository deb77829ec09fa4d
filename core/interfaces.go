package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT (Database operations)
// ============================================

// UserStorage defines user-related database operations.
//
// Email uniqueness is enforced here: CreateUser must fail with ErrUserExists
// when a record with the same email already exists, even under concurrent
// registration.
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// UpdateUserRole is an operator-level escape hatch. It is never reachable
	// from any client-facing endpoint.
	UpdateUserRole(ctx context.Context, id string, role Role) error
	DeleteUser(ctx context.Context, id string) error
}

// ============================================
// AUTH PORT (for HTTP adapters)
// ============================================

// AuthProvider exposes credential-store operations to transport adapters.
type AuthProvider interface {
	Register(ctx context.Context, email, password string) (*Identity, error)
	Login(ctx context.Context, email, password string) (*Identity, error)
	FindByID(ctx context.Context, id string) (*Identity, error)
}

// ============================================
// TOKEN PORT
// ============================================

// TokenSigner issues and verifies signed session tokens.
type TokenSigner interface {
	// Issue produces a signed token bound to the subject, valid for the
	// signer's fixed window starting now.
	Issue(subjectID string) (string, error)
	// Verify checks signature and expiry and returns the subject ID.
	// Fails with ErrTokenExpired or ErrTokenInvalid.
	Verify(token string) (string, error)
}

// ============================================
// CACHE PORT
// ============================================

// Cache defines identity caching operations used by the auth middleware to
// avoid a storage round trip on every authenticated request.
type Cache interface {
	Get(subjectID string) (*Identity, error)
	Set(subjectID string, identity *Identity) error
	Delete(subjectID string) error
	Clear() error
}

// CacheWithStats extends Cache with statistics tracking
type CacheWithStats interface {
	Cache
	Stats() CacheStats
}

// CacheConfig configures cache behavior
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}
