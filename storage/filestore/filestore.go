// Package filestore keeps every key in a single JSON document on disk.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
)

var _ storage.KeyValue = (*Store)(nil)

type Store struct {
	path   string
	values map[string]string
	lock   sync.RWMutex
}

// Open loads the document at path, creating its directory when needed.
// A missing file is an empty store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage folder: %w", err)
	}

	s := &Store{
		path:   cleanPath,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(cleanPath)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("decode storage file %s: %w", cleanPath, err)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.ErrEmptyKey
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	previous, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	previous, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = previous
		return err
	}
	return nil
}

// flush rewrites the document via a temp file and rename. Callers hold the write lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close storage file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
