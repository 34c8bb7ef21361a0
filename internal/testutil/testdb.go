package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory site store closed at test cleanup.
func NewTestDB(tb testing.TB) *sql.DB {
	tb.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(tb, err, "opening test database")
	tb.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW is the transaction runner services use in production.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
