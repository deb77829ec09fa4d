package services

import (
	"context"

	"github.com/jmolina/warden/core"
)

// failingStorage wraps a real storage and exposes error fields for behavior
// injection in tests.
type failingStorage struct {
	core.UserStorage

	createErr error
	getErr    error
}

func (f *failingStorage) CreateUser(ctx context.Context, u *core.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.UserStorage.CreateUser(ctx, u)
}

func (f *failingStorage) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.UserStorage.GetUserByID(ctx, id)
}

func (f *failingStorage) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.UserStorage.GetUserByEmail(ctx, email)
}
