package config

import "path/filepath"

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetStorageFile() string
	GetSQLitePath() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

// Storage selects and locates the key-value backend.
// Relative file paths are resolved against the data folder.
type Storage struct {
	Backend       string `env:"STORAGE_BACKEND" envDefault:"file"`
	File          string `env:"STORAGE_FILE" envDefault:"storage.json"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"storage.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"uzera:"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() string {
	return s.Backend
}

func (s Storage) GetStorageFile() string {
	return inDataFolder(s.File)
}

func (s Storage) GetSQLitePath() string {
	return inDataFolder(s.SQLitePath)
}

func (s Storage) GetRedisAddr() string {
	return s.RedisAddr
}

func (s Storage) GetRedisPassword() string {
	return s.RedisPassword
}

func (s Storage) GetRedisDB() int {
	return s.RedisDB
}

func (s Storage) GetRedisPrefix() string {
	return s.RedisPrefix
}

func inDataFolder(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(EnvVars{}.GetDataFolder(), path)
}
