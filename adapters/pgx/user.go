package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jmolina/warden/core"
)

// uniqueViolation is the PostgreSQL error code raised by the email index.
const uniqueViolation = "23505"

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO public.users (email, password, role) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time
	err := a.pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role.String()).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrUserExists
		}
		return err
	}

	user.ID = id
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT id, email, password, role, created_at, updated_at FROM public.users WHERE id = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT id, email, password, role, created_at, updated_at FROM public.users WHERE email = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) UpdateUserRole(ctx context.Context, id string, role core.Role) error {
	if !role.Valid() {
		return core.ErrUnknownRole
	}

	q := `UPDATE public.users SET role = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := a.pool.QueryRow(ctx, q, role.String(), id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (a *Adapter) DeleteUser(ctx context.Context, id string) error {
	_, err := a.pool.Exec(ctx, `DELETE FROM public.users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return nil
}

func (a *Adapter) scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := core.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed
	return user, nil
}
