package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"energyport/internal/infra/persistence"
	"energyport/internal/infra/persistence/postgres/testutil"
)

func newStubStore(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(testutil.Opener(db))
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreEnsuresTable(t *testing.T) {
	_, conn := newStubStore(t)
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "CREATE TABLE IF NOT EXISTS model_state") {
		t.Fatalf("expected model_state ddl, got %v", conn.Execs)
	}
}

func TestNewStoreSurfacesPingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	t.Cleanup(OverrideSQLOpen(testutil.Opener(db)))
	if _, err := NewStore(context.Background(), "postgres://example"); err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestStoreRoundTripsBuckets(t *testing.T) {
	ctx := context.Background()
	store, _ := newStubStore(t)
	if err := store.Save(ctx, "office", persistence.Buckets{
		"spaces":   []byte(`[{"name":"Office"}]`),
		"surfaces": []byte(`[]`),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "office", persistence.Buckets{"spaces": []byte(`[]`)}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := store.Load(ctx, "office")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || string(got["spaces"]) != `[]` {
		t.Fatalf("expected resave to replace buckets, got %v", got)
	}
	if _, err := store.Load(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreKeysAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newStubStore(t)
	for _, key := range []string{"zeta", "alpha"} {
		if err := store.Save(ctx, key, persistence.Buckets{"a": []byte("[]"), "b": []byte("[]")}); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}
	keys, err := store.Keys(ctx)
	if err != nil || len(keys) != 2 || keys[0] != "alpha" || keys[1] != "zeta" {
		t.Fatalf("unexpected keys %v (%v)", keys, err)
	}
	if ok, err := store.Delete(ctx, "zeta"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := store.Delete(ctx, "zeta"); ok {
		t.Fatal("expected second delete to report missing")
	}
}

func TestStoreSaveRollsBackOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	store, conn := newStubStore(t)
	conn.FailTables = map[string]bool{"model_state": true}
	if err := store.Save(ctx, "office", persistence.Buckets{"spaces": []byte("[]")}); err == nil {
		t.Fatal("expected insert failure")
	}
	if conn.RolledBack == 0 {
		t.Fatal("expected transaction rollback")
	}
	conn.FailTables = nil
	conn.FailBegin = true
	if err := store.Save(ctx, "office", nil); err == nil || !strings.Contains(err.Error(), "begin") {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestStoreAgainstLivePostgres(t *testing.T) {
	dsn := os.Getenv("ENERGYPORT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ENERGYPORT_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	key := "energyport-live-test"
	t.Cleanup(func() { _, _ = store.Delete(ctx, key) })
	if err := store.Save(ctx, key, persistence.Buckets{"spaces": []byte(`[{"name": "Office"}]`)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, key)
	if err != nil || len(got["spaces"]) == 0 {
		t.Fatalf("load: %v %v", got, err)
	}
}
