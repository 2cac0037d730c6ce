// Package backend opens the storage.KeyValue implementation named by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/jrsteele09/uzera-playground/internal/config"
	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
	"github.com/jrsteele09/uzera-playground/storage/filestore"
	"github.com/jrsteele09/uzera-playground/storage/memory"
	"github.com/jrsteele09/uzera-playground/storage/redisstore"
	"github.com/jrsteele09/uzera-playground/storage/sqlitestore"
	"github.com/rs/zerolog/log"
)

// CloseFunc releases whatever the backend holds open.
type CloseFunc func() error

func noopClose() error { return nil }

// Open builds the configured backend.
func Open(ctx context.Context, c config.StorageConfig) (storage.KeyValue, CloseFunc, error) {
	backend := c.GetStorageBackend()

	switch backend {
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory storage, sessions will not survive a restart")
		return memory.New(), noopClose, nil

	case config.BackendFile:
		s, err := filestore.Open(c.GetStorageFile())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[backend.Open] file")
		}
		log.Info().Str("path", c.GetStorageFile()).Msg("Using file storage")
		return s, noopClose, nil

	case config.BackendSQLite:
		s, err := sqlitestore.Open(c.GetSQLitePath())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[backend.Open] sqlite")
		}
		log.Info().Str("path", c.GetSQLitePath()).Msg("Using sqlite storage")
		return s, s.Close, nil

	case config.BackendRedis:
		s, err := redisstore.Dial(ctx, c.GetRedisAddr(), c.GetRedisPassword(), c.GetRedisDB(), c.GetRedisPrefix())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[backend.Open] redis")
		}
		log.Info().Str("addr", c.GetRedisAddr()).Str("prefix", c.GetRedisPrefix()).Msg("Using redis storage")
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("[backend.Open] %q: %w", backend, errors.ErrUnknownBackend)
}
