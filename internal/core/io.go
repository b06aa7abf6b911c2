package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"energyport/internal/blob"
	"energyport/pkg/domain"
)

// ReadModel reads and decodes a model document from disk.
func ReadModel(path string) (*domain.Model, error) {
	data, err := readFromDisk(path)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ReadSimulationParameter reads and decodes a simulation parameter document
// from disk.
func ReadSimulationParameter(path string) (*domain.SimulationParameter, error) {
	data, err := readFromDisk(path)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeSimulationParameter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func readFromDisk(path string) ([]byte, error) {
	// #nosec G304 -- document paths are supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// EncodeModel renders a model document as indented JSON.
func EncodeModel(doc *domain.Model) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode model %s: %w", doc.RecordName(), err)
	}
	return append(data, '\n'), nil
}

// WriteModel writes a model document to path, creating parent directories.
func WriteModel(path string, doc *domain.Model) error {
	data, err := EncodeModel(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create dirs: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// ReadModelBlob reads and decodes a model document from a blob store.
func ReadModelBlob(ctx context.Context, store blob.Store, key string) (*domain.Model, error) {
	data, _, err := blob.ReadDocument(ctx, store, key)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeModel(data)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", key, err)
	}
	return doc, nil
}

// ReadSimulationParameterBlob reads and decodes a simulation parameter
// document from a blob store.
func ReadSimulationParameterBlob(ctx context.Context, store blob.Store, key string) (*domain.SimulationParameter, error) {
	data, _, err := blob.ReadDocument(ctx, store, key)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeSimulationParameter(data)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", key, err)
	}
	return doc, nil
}

// WriteModelBlob stores a model document under key.
func WriteModelBlob(ctx context.Context, store blob.Store, key string, doc *domain.Model) (blob.Info, error) {
	data, err := EncodeModel(doc)
	if err != nil {
		return blob.Info{}, err
	}
	return blob.WriteDocument(ctx, store, key, data, map[string]string{"model": doc.RecordName()})
}
