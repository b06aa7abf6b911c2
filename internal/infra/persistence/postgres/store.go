// Package postgres persists saved model state to Postgres through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"energyport/internal/infra/persistence"
)

const (
	defaultDriver = "pgx"
	// DefaultDSN is used when no DSN is configured.
	DefaultDSN = "postgres://localhost/energyport?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the function used to open connections and returns a
// restore func. Tests use it to inject a stub driver.
func OverrideSQLOpen(fn func(string, string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

// Store keeps one JSONB row per (model, bucket) pair.
type Store struct {
	db *sql.DB
}

// NewStore connects to dsn (DefaultDSN when empty) and ensures the
// model_state table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureStateTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureStateTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS model_state (
		model_key TEXT NOT NULL,
		bucket TEXT NOT NULL,
		payload JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (model_key, bucket)
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure model_state table: %w", err)
	}
	return nil
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
	if _, err := tx.ExecContext(ctx, `DELETE FROM model_state WHERE model_key = $1`, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	savedAt := time.Now().UTC()
	for _, bucket := range buckets.Names() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO model_state (model_key, bucket, payload, saved_at) VALUES ($1, $2, $3, $4)`,
			key, bucket, string(buckets[bucket]), savedAt,
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
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM model_state WHERE model_key = $1`, key)
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
		return nil, fmt.Errorf("iterate model_state: %w", err)
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM model_state WHERE model_key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
