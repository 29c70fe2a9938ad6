package testutil

import (
	"testing"

	"github.com/alexanderramin/stride/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *db.Conn {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(conn *db.Conn) db.UnitOfWork {
	return db.NewUnitOfWork(conn)
}
