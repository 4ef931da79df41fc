package store

import (
	"testing"

	"github.com/talmor/cartwise/internal/database"
)

func setupUserTestDB(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db)
}

func TestUserCRUD(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("alice@example.com", "Alice", "hashed-secret")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "alice@example.com" || u.Name != "Alice" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash != "hashed-secret" {
		t.Errorf("password hash = %q", u.PasswordHash)
	}

	byEmail, err := us.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Fatalf("byEmail = %+v", byEmail)
	}

	missing, err := us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown email")
	}

	if err := us.Delete(u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := us.GetByID(u.ID)
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestUserEmailUnique(t *testing.T) {
	us := setupUserTestDB(t)

	if _, err := us.Create("dup@example.com", "A", "h1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := us.Create("dup@example.com", "B", "h2"); err == nil {
		t.Error("expected unique constraint violation")
	}
}
