// Package sqlite persists saved model state to an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"energyport/internal/infra/persistence"
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "energyport.db"

const schema = `CREATE TABLE IF NOT EXISTS model_state (
	model_key TEXT NOT NULL,
	bucket TEXT NOT NULL,
	payload BLOB NOT NULL,
	saved_at TEXT NOT NULL,
	PRIMARY KEY (model_key, bucket)
)`

// Store keeps one row per (model, bucket) pair in the model_state table.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; sqlite serialises them anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create model_state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Save replaces every bucket stored under key in one transaction.
func (s *Store) Save(ctx context.Context, key string, buckets persistence.Buckets) (retErr error) {
	if err := persistence.CheckKey(key); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM model_state WHERE model_key = ?`, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	savedAt := time.Now().UTC().Format(time.RFC3339Nano)
	for _, bucket := range buckets.Names() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO model_state(model_key, bucket, payload, saved_at) VALUES(?, ?, ?, ?)`,
			key, bucket, buckets[bucket], savedAt,
		); err != nil {
			return fmt.Errorf("insert %s/%s: %w", key, bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load returns the buckets stored under key.
func (s *Store) Load(ctx context.Context, key string) (persistence.Buckets, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM model_state WHERE model_key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("select model_state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := persistence.Buckets{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, persistence.NotFound(key)
	}
	return out, nil
}

// Keys returns the stored model keys in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT model_key FROM model_state ORDER BY model_key`)
	if err != nil {
		return nil, fmt.Errorf("select keys: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

// Delete removes the state stored under key and reports whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM model_state WHERE model_key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
