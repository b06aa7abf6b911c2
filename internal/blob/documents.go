package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// MaxDocumentSize bounds the documents read through ReadDocument.
const MaxDocumentSize = 256 << 20

// ReadDocument returns the full contents of the blob under key.
func ReadDocument(ctx context.Context, store Store, key string) ([]byte, Info, error) {
	info, rc, err := store.Get(ctx, key)
	if err != nil {
		return nil, Info{}, err
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(io.LimitReader(rc, MaxDocumentSize+1))
	if err != nil {
		return nil, Info{}, fmt.Errorf("read blob %s: %w", key, err)
	}
	if len(data) > MaxDocumentSize {
		return nil, Info{}, fmt.Errorf("blob %s exceeds %d bytes", key, MaxDocumentSize)
	}
	return data, info, nil
}

// WriteDocument stores a JSON document under key, replacing any previous
// version.
func WriteDocument(ctx context.Context, store Store, key string, data []byte, metadata map[string]string) (Info, error) {
	return store.Put(ctx, key, bytes.NewReader(data), PutOptions{
		ContentType: ContentTypeJSON,
		Metadata:    metadata,
		Overwrite:   true,
	})
}
