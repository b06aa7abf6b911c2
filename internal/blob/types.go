// Package blob is the entry point to the document stores. It re-exports the
// core contract and selects a backend from configuration; other packages
// never import the backends directly.
package blob

import (
	"energyport/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
	// ContentTypeJSON is the content type of stored documents.
	ContentTypeJSON = core.ContentTypeJSON
)

var (
	// ErrNotFound indicates a key names no blob.
	ErrNotFound = core.ErrNotFound
	// ErrExists indicates a create-only write hit an existing blob.
	ErrExists = core.ErrExists
)
