package blob

import (
	"context"

	infraS3 "energyport/internal/infra/blob/s3"
)

// S3Config configures the S3 backend.
//
//	ENERGYPORT_BLOB_S3_BUCKET: bucket name (required)
//	ENERGYPORT_BLOB_S3_REGION: region (default us-east-1)
//	ENERGYPORT_BLOB_S3_PREFIX: key prefix inside the bucket (optional)
//	ENERGYPORT_BLOB_S3_ENDPOINT: custom endpoint, e.g. MinIO (optional)
//	ENERGYPORT_BLOB_S3_PATH_STYLE: true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)
type S3Config = infraS3.Config

// S3 environment variables read by S3ConfigFromEnv.
const (
	EnvS3Bucket    = infraS3.EnvBucket
	EnvS3Region    = infraS3.EnvRegion
	EnvS3Prefix    = infraS3.EnvPrefix
	EnvS3Endpoint  = infraS3.EnvEndpoint
	EnvS3PathStyle = infraS3.EnvPathStyle
)

// S3ConfigFromEnv reads the S3 settings from the process environment.
func S3ConfigFromEnv() S3Config { return infraS3.ConfigFromEnv() }

// NewS3 constructs an S3-backed Store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the in-memory S3 fake for cross-package tests.
func NewMockS3ForTests() Store { return infraS3.NewMockForTests() }
