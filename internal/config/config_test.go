package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/uzera-playground/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("FOLDER", "/var/lib/uzera")

	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "Uzera Playground", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, config.BackendFile, c.GetStorageBackend())
	require.Equal(t, filepath.Join("/var/lib/uzera", "storage.json"), c.GetStorageFile())
	require.Equal(t, filepath.Join("/var/lib/uzera", "storage.db"), c.GetSQLitePath())
	require.Equal(t, "localhost:6379", c.GetRedisAddr())
	require.Equal(t, "uzera:", c.GetRedisPrefix())
	require.Empty(t, c.GetCollectorURL())
	require.Equal(t, 5*time.Second, c.GetCollectorTimeout())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:3000"))
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SQLITE_PATH", "/tmp/kv.db")
	t.Setenv("COLLECTOR_URL", "https://collector.example.com/identify")
	t.Setenv("COLLECTOR_TIMEOUT", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, config.BackendRedis, c.GetStorageBackend())
	require.Equal(t, 3, c.GetRedisDB())
	require.Equal(t, "/tmp/kv.db", c.GetSQLitePath())
	require.Equal(t, "https://collector.example.com/identify", c.GetCollectorURL())
	require.Equal(t, 250*time.Millisecond, c.GetCollectorTimeout())

	origins := c.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin("http://localhost:3000"))
	require.Equal(t, "https://a.example.com, https://b.example.com", origins.String())
}

func TestNew_InvalidValue(t *testing.T) {
	t.Setenv("REDIS_DB", "not-an-int")

	_, err := config.New()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse env:")
}

func TestAllowedOrigins_Wildcard(t *testing.T) {
	cors := config.NewCors("*")
	require.True(t, cors.GetAllowedOrigins().IsAllowedOrigin("https://anything.example.com"))
}
