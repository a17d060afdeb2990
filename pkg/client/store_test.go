package client

import (
	"testing"

	"github.com/trackerhq/bugtracker/internal/core/domain"
)

func testIdentity() Identity {
	return Identity{
		Username:     "alice",
		Role:         domain.RoleAdmin,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store, err := NewFileTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}

	want := testIdentity()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected identity present")
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestFileTokenStore_AbsentBeforeSave(t *testing.T) {
	store, err := NewFileTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("expected absent identity in a fresh store")
	}
}

func TestFileTokenStore_SaveReplacesAtomically(t *testing.T) {
	store, err := NewFileTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}

	if err := store.Save(testIdentity()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := Identity{Username: "bob", Role: domain.RoleTester, AccessToken: "a2", RefreshToken: "r2"}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, _ := store.Load()
	if !ok || got != second {
		t.Fatalf("expected second identity, got %+v", got)
	}
}

func TestFileTokenStore_Clear(t *testing.T) {
	store, err := NewFileTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}

	if err := store.Save(testIdentity()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("expected absent identity after Clear")
	}

	// Clearing an empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
}

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()

	if _, ok, _ := store.Load(); ok {
		t.Fatalf("expected absent identity in a fresh store")
	}

	want := testIdentity()
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, _ := store.Load()
	if !ok || got != want {
		t.Fatalf("round trip mismatch: got %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("expected absent identity after Clear")
	}
}
