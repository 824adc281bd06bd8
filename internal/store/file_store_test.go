package store_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"lingo/internal/domain"
	"lingo/internal/store"
)

// Cheap scrypt cost so sealed-store tests stay fast.
var fastKDF = store.WithScryptCost(1<<10, 8, 1)

func TestFileStore_SetGet_OK(t *testing.T) {
	home := t.TempDir()
	var s domain.Storage = store.NewFileStore(home)

	if err := s.Set(domain.KeyToken, "tok-1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.Set(domain.KeyUser, `{"username":"alice"}`); err != nil {
		t.Fatalf("set user: %v", err)
	}

	// A fresh store over the same directory sees the values.
	got, ok, err := store.NewFileStore(home).Get(domain.KeyToken)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("get token = %q %v %v", got, ok, err)
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	_, ok, err := s.Get(domain.KeyToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected no token in empty store")
	}
	if err := s.Delete(domain.KeyToken, domain.KeyUser); err != nil {
		t.Fatalf("delete on empty store: %v", err)
	}
}

func TestFileStore_DeleteLastKeyRemovesFile(t *testing.T) {
	s := store.NewFileStore(t.TempDir())
	if err := s.Set(domain.KeyToken, "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	if err := s.Delete(domain.KeyToken, domain.KeyUser); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
}

func TestFileStore_Sealed_RoundTrip(t *testing.T) {
	home := t.TempDir()
	s := store.NewFileStore(home, store.WithPassphrase("pass"), fastKDF)

	if err := s.Set(domain.KeyToken, "secret-token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if strings.Contains(string(raw), "secret-token") {
		t.Fatal("token stored in clear text")
	}

	got, ok, err := store.NewFileStore(home, store.WithPassphrase("pass")).Get(domain.KeyToken)
	if err != nil || !ok || got != "secret-token" {
		t.Fatalf("get = %q %v %v", got, ok, err)
	}
}

func TestFileStore_Sealed_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	if err := store.NewFileStore(home, store.WithPassphrase("correct"), fastKDF).Set(domain.KeyToken, "t"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_, _, err := store.NewFileStore(home, store.WithPassphrase("wrong")).Get(domain.KeyToken)
	if !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}
