// Package testutil provides shared helpers for integration tests.
// Every helper skips the calling test when TEST_DATABASE_URL is not set, so
// the unit suite runs without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/clickventure/backend/internal/database"
)

// NewPool returns a pool on TEST_DATABASE_URL configured exactly like the
// server's (google/uuid registered on every connection). It is closed when the
// test finishes.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := database.NewPool(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB returns a database/sql handle backed by a pool from NewPool, for
// tests that drive goose directly or inspect the catalog.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db := stdlib.OpenDBFromPool(NewPool(t))
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	// Registered after NewPool's cleanup, so it runs first.
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
