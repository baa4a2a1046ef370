package store

import "testing"

func TestUserCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	created, err := users.Create("anna@example.com", "Anna", "hashed")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.HouseholdID != nil {
		t.Error("new user should have no household")
	}
	if created.HasPendingInvite {
		t.Error("new user should have no pending invite")
	}

	byEmail, err := users.GetByEmail("anna@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("get by email returned %+v, want id %d", byEmail, created.ID)
	}
}

func TestUserGetMissing(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	u, err := users.GetByID(999)
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	if _, err := users.Create("dup@example.com", "First", "h1"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := users.Create("dup@example.com", "Second", "h2"); err == nil {
		t.Error("expected unique constraint error on duplicate email")
	}
}

func TestUserGetPasswordHash(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)

	if _, err := users.Create("anna@example.com", "Anna", "secret-hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	hash, err := users.GetPasswordHash("anna@example.com")
	if err != nil {
		t.Fatalf("get password hash: %v", err)
	}
	if hash != "secret-hash" {
		t.Errorf("hash = %q, want %q", hash, "secret-hash")
	}

	missing, err := users.GetPasswordHash("nobody@example.com")
	if err != nil {
		t.Fatalf("get missing hash: %v", err)
	}
	if missing != "" {
		t.Errorf("expected empty hash for unknown email, got %q", missing)
	}
}

func TestUserSetHousehold(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db)
	hid, _ := createTestHousehold(t, db, "owner@example.com")

	uid := createTestUser(t, db, "member@example.com")
	if err := users.SetHousehold(uid, &hid); err != nil {
		t.Fatalf("set household: %v", err)
	}

	u, err := users.GetByID(uid)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.HouseholdID == nil || *u.HouseholdID != hid {
		t.Errorf("household id = %v, want %d", u.HouseholdID, hid)
	}

	if err := users.SetHousehold(uid, nil); err != nil {
		t.Fatalf("unset household: %v", err)
	}
	u, _ = users.GetByID(uid)
	if u.HouseholdID != nil {
		t.Errorf("expected household unset, got %v", *u.HouseholdID)
	}
}
