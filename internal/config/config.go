// Package config resolves energyport settings from an optional YAML file and
// ENERGYPORT_* environment variables. Command-line flags are applied by the
// caller on top of the returned Config.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"energyport/internal/blob"
	"energyport/internal/core"
)

// Environment variables owned by this package. Storage and blob variables are
// declared next to the stores they configure.
const (
	EnvConfigFile  = "ENERGYPORT_CONFIG"
	EnvLogLevel    = "ENERGYPORT_LOG_LEVEL"
	EnvLogMode     = "ENERGYPORT_LOG_MODE"
	EnvSchemaPath  = "ENERGYPORT_SCHEMA_PATH"
	EnvMetricsFile = "ENERGYPORT_METRICS_FILE"
)

// Config is the resolved configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Schema  SchemaConfig  `yaml:"schema"`
	Storage StorageConfig `yaml:"storage"`
	Blob    BlobConfig    `yaml:"blob"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the logger encoding and threshold.
type LogConfig struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
}

// SchemaConfig points at schema catalogues on disk. When Paths is empty the
// embedded catalogues are used.
type SchemaConfig struct {
	Paths    []string `yaml:"paths"`
	Validate bool     `yaml:"validate"`
}

// StorageConfig mirrors core.StorageConfig.
type StorageConfig struct {
	Driver      string `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// BlobConfig mirrors blob.Config.
type BlobConfig struct {
	Driver string   `yaml:"driver"`
	FSRoot string   `yaml:"fs_root"`
	S3     S3Config `yaml:"s3"`
}

// S3Config holds the non-secret S3 settings. Credentials come from the
// standard AWS environment.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info", Mode: "dev"},
		Storage: StorageConfig{Driver: string(core.StorageSQLite)},
		Blob:    BlobConfig{Driver: string(blob.DriverFilesystem)},
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Load resolves the configuration from path (optional) and the process
// environment. An empty path falls back to ENERGYPORT_CONFIG.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an explicit environment lookup.
func LoadWith(path string, lookup LookupFunc) (Config, error) {
	cfg := Default()
	if path == "" {
		path, _ = lookup(EnvConfigFile)
	}
	if path != "" {
		// #nosec G304 -- config path is supplied by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(lookup)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup LookupFunc) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Mode, EnvLogMode)
	set(&c.Metrics.Textfile, EnvMetricsFile)
	if v, ok := lookup(EnvSchemaPath); ok && v != "" {
		c.Schema.Paths = strings.Split(v, string(os.PathListSeparator))
	}

	set(&c.Storage.Driver, core.EnvStorageDriver)
	set(&c.Storage.SQLitePath, core.EnvSQLitePath)
	set(&c.Storage.PostgresDSN, core.EnvPostgresDSN)

	set(&c.Blob.Driver, blob.EnvDriver)
	set(&c.Blob.FSRoot, blob.EnvFSRoot)
	set(&c.Blob.S3.Bucket, blob.EnvS3Bucket)
	set(&c.Blob.S3.Region, blob.EnvS3Region)
	set(&c.Blob.S3.Prefix, blob.EnvS3Prefix)
	set(&c.Blob.S3.Endpoint, blob.EnvS3Endpoint)
	if v, ok := lookup(blob.EnvS3PathStyle); ok && v != "" {
		c.Blob.S3.PathStyle = strings.EqualFold(v, "true")
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		err = multierr.Append(err, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	if !oneOf(c.Log.Mode, "dev", "development", "prod", "production") {
		err = multierr.Append(err, fmt.Errorf("log.mode %q must be dev or prod", c.Log.Mode))
	}
	switch core.StorageDriver(c.Storage.Driver) {
	case core.StorageMemory, core.StorageSQLite:
	case core.StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			err = multierr.Append(err, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	switch blob.Driver(c.Blob.Driver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.Blob.S3.Bucket == "" {
			err = multierr.Append(err, errors.New("blob.s3.bucket is required for the s3 driver"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown blob driver %q", c.Blob.Driver))
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StorageConfig converts the storage settings for core.OpenModelStore.
func (c Config) StorageConfig() core.StorageConfig {
	return core.StorageConfig{
		Driver:      core.StorageDriver(c.Storage.Driver),
		SQLitePath:  c.Storage.SQLitePath,
		PostgresDSN: c.Storage.PostgresDSN,
	}
}

// BlobConfig converts the blob settings for blob.Open.
func (c Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.Blob.Driver),
		FSRoot: c.Blob.FSRoot,
		S3: blob.S3Config{
			Bucket:    c.Blob.S3.Bucket,
			Region:    c.Blob.S3.Region,
			Prefix:    c.Blob.S3.Prefix,
			Endpoint:  c.Blob.S3.Endpoint,
			PathStyle: c.Blob.S3.PathStyle,
		},
	}
}

// OpenModelStore opens the configured model store.
func (c Config) OpenModelStore(ctx context.Context) (core.ModelStore, error) {
	return core.OpenModelStore(ctx, c.StorageConfig())
}

// OpenBlobStore opens the configured blob store.
func (c Config) OpenBlobStore(ctx context.Context) (blob.Store, error) {
	return blob.Open(ctx, c.BlobConfig())
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
