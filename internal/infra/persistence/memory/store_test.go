package memory

import (
	"context"
	"errors"
	"testing"

	"energyport/internal/infra/persistence"
)

func TestStoreSaveLoadKeysDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	buckets := persistence.Buckets{"spaces": []byte(`[{"name":"a"}]`), "surfaces": []byte(`[]`)}
	if err := store.Save(ctx, "office", buckets); err != nil {
		t.Fatalf("save: %v", err)
	}
	buckets["spaces"][2] = 'X'
	got, err := store.Load(ctx, "office")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got["spaces"]) != `[{"name":"a"}]` {
		t.Fatalf("stored payload aliased caller memory: %s", got["spaces"])
	}
	if err := store.Save(ctx, "annex", persistence.Buckets{}); err != nil {
		t.Fatalf("save annex: %v", err)
	}
	keys, _ := store.Keys(ctx)
	if len(keys) != 2 || keys[0] != "annex" || keys[1] != "office" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if ok, _ := store.Delete(ctx, "office"); !ok {
		t.Fatal("expected delete to report existing model")
	}
	if _, err := store.Load(ctx, "office"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(ctx, " ", nil); err == nil {
		t.Fatal("expected blank key to be rejected")
	}
}
