package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmolina/warden/core"
)

// MemoryStorage is a map-backed core.UserStorage. It backs tests and the
// DATABASE_URL-less development mode; uniqueness holds under concurrency
// because the lock spans the existence check and the insert.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[string]*core.User
	byEmail map[string]string // email -> id
}

var _ core.UserStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[string]*core.User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryStorage) CreateUser(_ context.Context, u *core.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[u.Email]; exists {
		return core.ErrUserExists
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	m.byID[u.ID] = &stored
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *MemoryStorage) GetUserByID(_ context.Context, id string) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	copied := *m.byID[id]
	return &copied, nil
}

func (m *MemoryStorage) UpdateUserRole(_ context.Context, id string, role core.Role) error {
	if !role.Valid() {
		return core.ErrUnknownRole
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return core.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStorage) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return core.ErrUserNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}
