// Package repo contains all database access logic for the travel-review API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here: only SQL, transactions, and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clickventure/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Tx, and
// pgxmock's pool. Accepting this interface instead of *pgxpool.Pool directly
// allows integration tests to pass a transaction that is rolled back after each
// test, and unit tests to pass a pgxmock pool. Begin on a pgx.Tx opens a
// savepoint, so multi-statement writes nest correctly inside test transactions.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes mapped onto domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// wrap prefixes err with the failing operation and translates storage errors
// into domain sentinels so the layers above never inspect pgx types.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, classify(err))
}

func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
		}
	}
	return err
}
