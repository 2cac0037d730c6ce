// Package sqlitestore provides a SQLite-backed key-value store.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	interrors "github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
	_ "modernc.org/sqlite"
)

var _ storage.KeyValue = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS key_values (
	storage_key   TEXT PRIMARY KEY,
	storage_value TEXT NOT NULL
)`

// Store persists keys in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage folder: %w", err)
	}

	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if s == nil || s.sqlDB == nil {
		return "", false, interrors.ErrStorageNotConfigured
	}

	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT storage_value FROM key_values WHERE storage_key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return interrors.ErrStorageNotConfigured
	}
	if key == "" {
		return interrors.ErrEmptyKey
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO key_values (storage_key, storage_value) VALUES (?, ?)
		 ON CONFLICT(storage_key) DO UPDATE SET storage_value = excluded.storage_value`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return interrors.ErrStorageNotConfigured
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM key_values WHERE storage_key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
