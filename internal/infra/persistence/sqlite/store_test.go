package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"energyport/internal/infra/persistence"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store := newTestStore(t, path)
	buckets := persistence.Buckets{
		"spaces":   []byte(`[{"name":"Office"}]`),
		"surfaces": []byte(`[]`),
	}
	if err := store.Save(ctx, "office", buckets); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := newTestStore(t, path)
	got, err := reopened.Load(ctx, "office")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || string(got["spaces"]) != `[{"name":"Office"}]` {
		t.Fatalf("unexpected buckets %v", got)
	}
	if reopened.Path() != path {
		t.Fatalf("unexpected path %s", reopened.Path())
	}
}

func TestStoreSaveReplacesBuckets(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	if err := store.Save(ctx, "office", persistence.Buckets{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "office", persistence.Buckets{"a": []byte("3")}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := store.Load(ctx, "office")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || string(got["a"]) != "3" {
		t.Fatalf("expected stale buckets to be dropped, got %v", got)
	}
}

func TestStoreKeysAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	for _, key := range []string{"zeta", "alpha"} {
		if err := store.Save(ctx, key, persistence.Buckets{"spaces": []byte("[]")}); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}
	keys, err := store.Keys(ctx)
	if err != nil || len(keys) != 2 || keys[0] != "alpha" {
		t.Fatalf("unexpected keys %v (%v)", keys, err)
	}
	ok, err := store.Delete(ctx, "alpha")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := store.Delete(ctx, "alpha"); ok {
		t.Fatal("expected second delete to report missing model")
	}
	if _, err := store.Load(ctx, "alpha"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, "", nil); err == nil {
		t.Fatal("expected empty key to be rejected")
	}
}
