// Package persistence holds what the model state backends share. A saved
// model is a set of named JSON buckets, one per engine object category,
// stored under a model key.
package persistence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Buckets maps a bucket name to its JSON payload.
type Buckets map[string][]byte

// ErrNotFound is returned when no state is stored under a model key.
var ErrNotFound = errors.New("model state not found")

// NotFound wraps ErrNotFound with the missing key.
func NotFound(key string) error { return fmt.Errorf("model %q: %w", key, ErrNotFound) }

// CheckKey rejects blank model keys.
func CheckKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty model key")
	}
	return nil
}

// Names returns the bucket names in sorted order, which is the order every
// backend writes them in.
func (b Buckets) Names() []string {
	out := make([]string, 0, len(b))
	for name := range b {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone deep copies the buckets.
func (b Buckets) Clone() Buckets {
	if b == nil {
		return nil
	}
	out := make(Buckets, len(b))
	for name, payload := range b {
		out[name] = append([]byte(nil), payload...)
	}
	return out
}
