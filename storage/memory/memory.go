package memory

import (
	"context"
	"sync"

	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
)

var _ storage.KeyValue = (*Store)(nil)

type Store struct {
	values map[string]string
	lock   sync.RWMutex
}

func New() *Store {
	return &Store{
		values: make(map[string]string),
	}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errors.ErrEmptyKey
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = value
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.values)
}
