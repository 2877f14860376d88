// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db"
)

// New returns a fresh database with all migrations and seed data applied.
// A single connection keeps the in-memory database alive for the test's lifetime,
// so callers must not query the pool while a transaction is open.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
