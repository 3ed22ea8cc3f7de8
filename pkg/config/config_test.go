package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.False(t, cfg.Readiness.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.Readiness.CacheTTL)
	assert.Equal(t, time.Minute, cfg.Readiness.DashboardCacheTTL)
	assert.Equal(t, 1, cfg.Readiness.WarmWorkers)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("ENABLE_READINESS_CACHE", "true")
	t.Setenv("READINESS_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.True(t, cfg.Readiness.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.Readiness.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestUnknownStoreDriverFallsBackToMemory(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "cassandra")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Hour))
}
