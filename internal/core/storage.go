package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"energyport/internal/infra/persistence"
	"energyport/internal/infra/persistence/memory"
	"energyport/internal/osm"
)

// StorageDriver identifies a concrete model store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// Storage environment variables.
const (
	EnvStorageDriver = "ENERGYPORT_STORAGE_DRIVER"
	EnvSQLitePath    = "ENERGYPORT_SQLITE_PATH"
	EnvPostgresDSN   = "ENERGYPORT_POSTGRES_DSN"
)

// ErrModelNotFound is returned by ModelStore.Load for an unknown key.
var ErrModelNotFound = persistence.ErrNotFound

// ModelStore saves translated engine models under a key.
type ModelStore interface {
	Save(ctx context.Context, key string, snap osm.Snapshot) error
	Load(ctx context.Context, key string) (osm.Snapshot, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
}

// bucketBackend is what the persistence drivers implement.
type bucketBackend interface {
	Save(ctx context.Context, key string, buckets persistence.Buckets) error
	Load(ctx context.Context, key string) (persistence.Buckets, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
}

// snapshotStore converts snapshots to buckets for a persistence driver.
type snapshotStore struct {
	backend bucketBackend
}

func (s snapshotStore) Save(ctx context.Context, key string, snap osm.Snapshot) error {
	buckets, err := snap.Buckets()
	if err != nil {
		return fmt.Errorf("save model %s: %w", key, err)
	}
	return s.backend.Save(ctx, key, buckets)
}

func (s snapshotStore) Load(ctx context.Context, key string) (osm.Snapshot, error) {
	buckets, err := s.backend.Load(ctx, key)
	if err != nil {
		return osm.Snapshot{}, err
	}
	snap, err := osm.SnapshotFromBuckets(buckets)
	if err != nil {
		return osm.Snapshot{}, fmt.Errorf("load model %s: %w", key, err)
	}
	return snap, nil
}

func (s snapshotStore) Keys(ctx context.Context) ([]string, error) { return s.backend.Keys(ctx) }

func (s snapshotStore) Delete(ctx context.Context, key string) (bool, error) {
	return s.backend.Delete(ctx, key)
}

func (s snapshotStore) Close() error { return s.backend.Close() }

// StorageConfig selects and configures a model store.
type StorageConfig struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
}

// StorageConfigFromEnv reads the storage settings. The driver defaults to
// sqlite when unset.
//
//	ENERGYPORT_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	ENERGYPORT_SQLITE_PATH: path to sqlite file (default ./energyport.db)
//	ENERGYPORT_POSTGRES_DSN: postgres DSN when driver=postgres
func StorageConfigFromEnv() StorageConfig {
	return StorageConfig{
		Driver:      StorageDriver(os.Getenv(EnvStorageDriver)),
		SQLitePath:  os.Getenv(EnvSQLitePath),
		PostgresDSN: os.Getenv(EnvPostgresDSN),
	}
}

// NewMemoryModelStore returns a store that keeps models in process memory.
func NewMemoryModelStore() ModelStore {
	return snapshotStore{backend: memory.NewStore()}
}

// OpenModelStore opens the store selected by cfg.
func OpenModelStore(ctx context.Context, cfg StorageConfig) (ModelStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	switch driver {
	case StorageMemory:
		return NewMemoryModelStore(), nil
	case StorageSQLite:
		return NewSQLiteModelStore(ctx, cfg.SQLitePath)
	case StoragePostgres:
		return NewPostgresModelStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// OpenModelStoreFromEnv opens the store selected by the environment.
func OpenModelStoreFromEnv(ctx context.Context) (ModelStore, error) {
	return OpenModelStore(ctx, StorageConfigFromEnv())
}

// IsModelNotFound reports whether err means no model is stored under a key.
func IsModelNotFound(err error) bool { return errors.Is(err, ErrModelNotFound) }
