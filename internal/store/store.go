package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed repository. Cascade and series operations
// run as single transactions; a partial cascade never commits.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
