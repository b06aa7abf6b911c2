package core

import (
	"context"

	"energyport/internal/infra/persistence/sqlite"
)

// NewSQLiteModelStore opens a model store backed by the sqlite file at path
// (empty for the default path).
func NewSQLiteModelStore(ctx context.Context, path string) (ModelStore, error) {
	backend, err := sqlite.NewStore(ctx, path)
	if err != nil {
		return nil, err
	}
	return snapshotStore{backend: backend}, nil
}
