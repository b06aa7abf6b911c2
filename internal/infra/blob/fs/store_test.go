package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"energyport/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStorePutGetHeadListDelete(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	info, err := store.Put(ctx, "models/office.json", strings.NewReader(`{"type":"Model"}`), core.PutOptions{
		ContentType: core.ContentTypeJSON,
		Metadata:    map[string]string{"source": "test"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "models/office.json" || info.Size != 16 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	head, err := store.Head(ctx, "models/office.json")
	if err != nil || head.ETag != info.ETag || head.ContentType != core.ContentTypeJSON {
		t.Fatalf("head: %+v %v", head, err)
	}
	got, rc, err := store.Get(ctx, "models/office.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	if err := rc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if string(body) != `{"type":"Model"}` || got.Metadata["source"] != "test" {
		t.Fatalf("unexpected blob %q %+v", body, got)
	}
	list, err := store.List(ctx, "models/")
	if err != nil || len(list) != 1 || list[0].Key != "models/office.json" {
		t.Fatalf("unexpected list %+v (%v)", list, err)
	}
	ok, err := store.Delete(ctx, "models/office.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, "models/office.json")
	if err != nil || ok {
		t.Fatalf("expected missing blob on second delete: %v %v", ok, err)
	}
	if _, _, err := store.Get(ctx, "models/office.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Head(ctx, "models/office.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found on head, got %v", err)
	}
}

func TestStorePutOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if _, err := store.Put(ctx, "out/model.json", strings.NewReader("one"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "out/model.json", strings.NewReader("two"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
	if _, err := store.Put(ctx, "out/model.json", strings.NewReader("three"), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(store.Root(), "out", "model.json"))
	if err != nil || string(data) != "three" {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	for _, key := range []string{"", "  ", "/abs.json", "../escape.json", "a/../../b", "doc.json.meta"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Errorf("expected key %q to be rejected", key)
		}
	}
}

func TestNewDefaultsRoot(t *testing.T) {
	t.Chdir(t.TempDir())
	store, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if store.Root() != DefaultRoot || store.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected store %s %s", store.Root(), store.Driver())
	}
}
