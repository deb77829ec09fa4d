// Package pgx implements core.UserStorage on PostgreSQL via pgxpool.
//
// Expected schema:
//
//	CREATE TABLE public.users (
//	    id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    email      text NOT NULL UNIQUE,
//	    password   text NOT NULL,
//	    role       text NOT NULL DEFAULT 'user',
//	    created_at timestamptz NOT NULL DEFAULT now(),
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
//
// The unique index on email is the uniqueness authority; concurrent inserts
// for the same address surface as core.ErrUserExists.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmolina/warden/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.UserStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
