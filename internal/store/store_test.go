package store

import (
	"database/sql"
	"testing"

	"homeledger/internal/database"
)

// openTestDB opens an in-memory database with the full schema applied.
// A single connection keeps the in-memory database alive for the test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and returns its id.
func createTestUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	u, err := NewUserStore(db).Create(email, "Test User", "hash")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u.ID
}

// createTestHousehold inserts a household owned by a fresh user and
// returns (householdID, ownerID).
func createTestHousehold(t *testing.T, db *sql.DB, ownerEmail string) (int64, int64) {
	t.Helper()
	ownerID := createTestUser(t, db, ownerEmail)
	h, err := NewHouseholdStore(db).Create("Test Household", ownerID)
	if err != nil {
		t.Fatalf("create test household: %v", err)
	}
	return h.ID, ownerID
}
