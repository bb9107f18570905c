package testutil

import (
	"database/sql"
	"testing"

	"lg/fitplan-go-api/internal/store"
	"lg/fitplan-go-api/internal/store/sqlite"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sqlite.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns a Store over a fresh in-memory database.
func NewTestStore(t *testing.T) store.Store {
	t.Helper()
	return sqlite.New(NewTestDB(t))
}
