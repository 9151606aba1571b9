package users

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "users.json"))

	if err := store.Register("jane", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ok, err := store.Authenticate("jane", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !ok {
		t.Fatalf("expected login to succeed")
	}

	// Username matching is case-insensitive, password is exact.
	ok, err = store.Authenticate("JANE", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !ok {
		t.Fatalf("expected case-insensitive username match")
	}
	ok, _ = store.Authenticate("jane", "wrong")
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestRegisterConflict(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "users.json"))
	if err := store.Register("jane", "a"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := store.Register("jane", "b")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
}

func TestAuthenticateMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "users.json"))
	ok, err := store.Authenticate("nobody", "x")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if ok {
		t.Fatalf("expected login against empty store to fail")
	}
}
