package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"energyport/internal/infra/persistence/postgres"
	"energyport/internal/infra/persistence/postgres/testutil"
	"energyport/internal/osm"
)

func exportFixture(t *testing.T) (*osm.Model, osm.Snapshot) {
	t.Helper()
	model, _ := buildFixture(t)
	snap, err := model.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	return model, snap
}

func exerciseModelStore(t *testing.T, store ModelStore) {
	t.Helper()
	ctx := context.Background()
	model, snap := exportFixture(t)

	if err := store.Save(ctx, "office", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx, "office")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	restored, err := osm.Import(loaded)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if restored.Len() != model.Len() {
		t.Fatalf("expected %d objects, got %d", model.Len(), restored.Len())
	}
	if restored.Building().DefaultConstructionSet.Name() != "Office Set" {
		t.Fatal("expected building singleton to survive the store")
	}

	keys, err := store.Keys(ctx)
	if err != nil || len(keys) != 1 || keys[0] != "office" {
		t.Fatalf("unexpected keys %v (%v)", keys, err)
	}
	if _, err := store.Load(ctx, "missing"); !IsModelNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	existed, err := store.Delete(ctx, "office")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = store.Delete(ctx, "office")
	if err != nil || existed {
		t.Fatalf("second delete: existed=%v err=%v", existed, err)
	}
}

func TestMemoryModelStore(t *testing.T) {
	store := NewMemoryModelStore()
	defer func() { _ = store.Close() }()
	exerciseModelStore(t, store)
}

func TestSQLiteModelStore(t *testing.T) {
	store, err := OpenModelStore(context.Background(), StorageConfig{
		Driver:     StorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "models.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseModelStore(t, store)
}

func TestPostgresModelStoreWithStubDriver(t *testing.T) {
	db, conn := testutil.NewStubDB()
	restore := postgres.OverrideSQLOpen(testutil.Opener(db))
	defer restore()

	store, err := OpenModelStore(context.Background(), StorageConfig{Driver: StoragePostgres, PostgresDSN: "postgres://stub"})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseModelStore(t, store)
	if len(conn.Execs) == 0 {
		t.Fatal("expected statements to reach the driver")
	}
}

func TestOpenModelStoreFromEnv(t *testing.T) {
	t.Setenv(EnvStorageDriver, string(StorageMemory))
	store, err := OpenModelStoreFromEnv(context.Background())
	if err != nil {
		t.Fatalf("open from env: %v", err)
	}
	defer func() { _ = store.Close() }()
	if _, ok := store.(snapshotStore); !ok {
		t.Fatalf("expected snapshot store, got %T", store)
	}

	t.Setenv(EnvStorageDriver, "")
	t.Setenv(EnvSQLitePath, filepath.Join(t.TempDir(), "env.db"))
	cfg := StorageConfigFromEnv()
	if cfg.Driver != "" || !strings.HasSuffix(cfg.SQLitePath, "env.db") {
		t.Fatalf("unexpected config %+v", cfg)
	}
	sqliteStore, err := OpenModelStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("default driver should be sqlite: %v", err)
	}
	_ = sqliteStore.Close()
}

func TestOpenModelStoreUnknownDriver(t *testing.T) {
	_, err := OpenModelStore(context.Background(), StorageConfig{Driver: "etcd"})
	if err == nil || !strings.Contains(err.Error(), "unknown storage driver") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}
