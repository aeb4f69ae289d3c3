package kv_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"studyhub/internal/platform/kv"
)

func TestSQLiteStoreRoundTripAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), ".studyhub", "studyhub.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(ctx, "jwtToken"); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Set(ctx, "jwtToken", []byte("abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "jwtToken", []byte("def")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, "jwtToken")
	if err != nil || string(got) != "def" {
		t.Fatalf("expected def, got %q (%v)", got, err)
	}
	if err := store.Delete(ctx, "jwtToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "jwtToken"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := store.Get(ctx, "jwtToken"); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	first, err := kv.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(ctx, "user", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := kv.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Get(ctx, "user")
	if err != nil || string(got) != `{"id":1}` {
		t.Fatalf("expected persisted value, got %q (%v)", got, err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	buf := []byte("one")
	_ = store.Set(ctx, "k", buf)
	buf[0] = 'X'
	got, _ := store.Get(ctx, "k")
	if string(got) != "one" {
		t.Fatalf("store must not alias caller slices, got %q", got)
	}
}
