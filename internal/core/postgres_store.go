package core

import (
	"context"

	"energyport/internal/infra/persistence/postgres"
)

// NewPostgresModelStore opens a model store backed by Postgres.
func NewPostgresModelStore(ctx context.Context, dsn string) (ModelStore, error) {
	backend, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return snapshotStore{backend: backend}, nil
}
