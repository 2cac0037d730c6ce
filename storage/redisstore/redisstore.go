// Package redisstore keeps keys in Redis under a common prefix.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	interrors "github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
	"github.com/redis/go-redis/v9"
)

var _ storage.KeyValue = (*Store)(nil)

const DefaultPrefix = "uzera:"

type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an existing client.
func New(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Dial connects to addr and checks the connection with a ping.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, prefix), nil
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Close closes the underlying client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, interrors.ErrStorageNotConfigured
	}

	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return interrors.ErrStorageNotConfigured
	}
	if key == "" {
		return interrors.ErrEmptyKey
	}

	// No expiry: entries live until removed.
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return interrors.ErrStorageNotConfigured
	}

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
