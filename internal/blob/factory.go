package blob

import (
	"context"
	"fmt"
	"os"
)

// Environment variables read by ConfigFromEnv. S3 settings are documented
// in s3.go.
const (
	EnvDriver = "ENERGYPORT_BLOB_DRIVER"
	EnvFSRoot = "ENERGYPORT_BLOB_FS_ROOT"
)

// Config selects and configures a blob backend.
type Config struct {
	Driver Driver
	FSRoot string
	S3     S3Config
}

// ConfigFromEnv reads a Config from the process environment. The driver
// defaults to fs.
//
//	ENERGYPORT_BLOB_DRIVER: fs|s3|memory (default fs)
//	ENERGYPORT_BLOB_FS_ROOT: directory root when driver=fs (default ./blobdata)
func ConfigFromEnv() Config {
	cfg := Config{
		Driver: Driver(os.Getenv(EnvDriver)),
		FSRoot: os.Getenv(EnvFSRoot),
		S3:     S3ConfigFromEnv(),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverFilesystem
	}
	return cfg
}

// Open constructs the store selected by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// OpenFromEnv constructs the store selected by the process environment.
func OpenFromEnv(ctx context.Context) (Store, error) {
	return Open(ctx, ConfigFromEnv())
}
