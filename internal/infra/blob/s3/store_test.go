package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"energyport/internal/blob/core"
)

func TestMockStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	info, err := store.Put(ctx, "models/office.json", strings.NewReader(`{"type":"Model"}`), core.PutOptions{
		ContentType: core.ContentTypeJSON,
		Metadata:    map[string]string{"source": "test"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 16 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	got, rc, err := store.Get(ctx, "models/office.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"type":"Model"}` || got.ContentType != core.ContentTypeJSON || got.Metadata["source"] != "test" {
		t.Fatalf("unexpected blob %q %+v", body, got)
	}
	if _, err := store.Put(ctx, "models/office.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
	if _, err := store.Put(ctx, "models/office.json", strings.NewReader("{}"), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	head, err := store.Head(ctx, "models/office.json")
	if err != nil || head.Size != 2 {
		t.Fatalf("head after overwrite: %+v %v", head, err)
	}
}

func TestMockStoreListPages(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	for _, key := range []string{"out/c.json", "out/a.json", "out/b.json", "in/x.json"} {
		if _, err := store.Put(ctx, key, strings.NewReader("{}"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	list, err := store.List(ctx, "out/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Key != "out/a.json" || list[2].Key != "out/c.json" {
		t.Fatalf("unexpected listing %+v", list)
	}
}

func TestMockStoreMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if _, _, err := store.Get(ctx, "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found on get, got %v", err)
	}
	if _, err := store.Head(ctx, "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found on head, got %v", err)
	}
	if ok, err := store.Delete(ctx, "missing.json"); err != nil || ok {
		t.Fatalf("expected delete of missing blob to report false: %v %v", ok, err)
	}
	if _, err := store.Put(ctx, "doc.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := store.Delete(ctx, "doc.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing bucket error")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvBucket, "models")
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvPrefix, "energyport")
	t.Setenv(EnvEndpoint, "http://localhost:9000")
	t.Setenv(EnvPathStyle, "TRUE")
	cfg := ConfigFromEnv()
	if cfg.Bucket != "models" || cfg.Region != "eu-west-1" || cfg.Prefix != "energyport" || !cfg.PathStyle || cfg.Endpoint != "http://localhost:9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	store, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if store.objectKey("a.json") != "energyport/a.json" {
		t.Fatalf("unexpected object key %s", store.objectKey("a.json"))
	}
}

func TestMockStoreIgnoresAmbientAWSEnv(t *testing.T) {
	t.Setenv("AWS_CA_BUNDLE", "/nonexistent/ca.pem")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_PROFILE", "missing-profile")
	store := NewMockForTests()
	ctx := context.Background()
	if _, err := store.Put(ctx, "env/check.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("put with ambient AWS env: %v", err)
	}
	if _, err := store.Head(ctx, "env/check.json"); err != nil {
		t.Fatalf("head: %v", err)
	}
}
