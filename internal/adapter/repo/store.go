// Package repo implements domain.Store backed by PostgreSQL via pgx.
// Monetary columns are NUMERIC(78,0), wide enough for any uint256 wei
// value, and cross the wire as decimal strings.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yajna-funds/server/internal/domain"
)

// DB is the slice of the pgx pool surface the store uses. Tests substitute a
// fake; production passes *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store implements domain.Store over a PostgreSQL connection pool.
type Store struct {
	db DB
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// NewStoreWithDB wires an arbitrary DB, used by tests.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

var _ domain.Store = (*Store)(nil)

// 23505 is PostgreSQL's unique_violation class.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// 23503 is PostgreSQL's foreign_key_violation class. Inserts referencing a
// missing user or campaign surface it; callers map it to ErrNotFound so both
// store backends reject unknown references the same way.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
