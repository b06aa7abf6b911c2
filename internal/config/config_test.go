package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"energyport/internal/blob"
	"energyport/internal/core"
)

func envMap(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "energyport.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWith("", envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Mode != "dev" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.StorageConfig().Driver != core.StorageSQLite || cfg.BlobConfig().Driver != blob.DriverFilesystem {
		t.Fatalf("unexpected driver defaults %+v", cfg)
	}
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
schema:
  paths: [a.json]
  validate: true
storage:
  driver: memory
blob:
  driver: s3
  s3:
    bucket: documents
    region: eu-west-1
metrics:
  textfile: /tmp/energyport.prom
`)
	cfg, err := LoadWith(path, envMap(map[string]string{
		EnvLogMode:          "prod",
		EnvSchemaPath:       "x.json" + string(os.PathListSeparator) + "y.json",
		blob.EnvS3PathStyle: "TRUE",
		blob.EnvS3Prefix:    "in/",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Mode != "prod" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if len(cfg.Schema.Paths) != 2 || cfg.Schema.Paths[1] != "y.json" || !cfg.Schema.Validate {
		t.Fatalf("expected environment schema paths to replace the file's, got %+v", cfg.Schema)
	}
	s3 := cfg.BlobConfig().S3
	if s3.Bucket != "documents" || s3.Region != "eu-west-1" || s3.Prefix != "in/" || !s3.PathStyle {
		t.Fatalf("unexpected s3 config %+v", s3)
	}
	if cfg.Metrics.Textfile != "/tmp/energyport.prom" {
		t.Fatalf("unexpected metrics config %+v", cfg.Metrics)
	}
}

func TestLoadUsesConfigFileVariable(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: memory\n")
	cfg, err := LoadWith("", envMap(map[string]string{EnvConfigFile: path}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	store, err := cfg.OpenModelStore(context.Background())
	if err != nil {
		t.Fatalf("open model store: %v", err)
	}
	_ = store.Close()
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: debug\n")
	if _, err := LoadWith(path, envMap(nil)); err == nil || !strings.Contains(err.Error(), "logging") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := LoadWith(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil)); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadWith(writeConfig(t, ""), envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected defaults, got %+v", cfg.Log)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	_, err := LoadWith("", envMap(map[string]string{
		EnvLogLevel:           "loud",
		core.EnvStorageDriver: "postgres",
		blob.EnvDriver:        "ftp",
	}))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"log.level", "postgres_dsn", "unknown blob driver"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
	cfg := Default()
	cfg.Blob.Driver = string(blob.DriverS3)
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "bucket") {
		t.Fatalf("expected missing bucket error, got %v", err)
	}
}

func TestOpenBlobStoreMemory(t *testing.T) {
	cfg := Default()
	cfg.Blob.Driver = string(blob.DriverMemory)
	store, err := cfg.OpenBlobStore(context.Background())
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	if store.Driver() != blob.DriverMemory {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}
