package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "")
	t.Setenv("CACHE_METHODS", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("EVENTS_PUBLISH_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.False(t, cfg.Production())
	assert.Equal(t, "ip_route", cfg.RateLimit.KeyStrategy)
	assert.True(t, cfg.Cache.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Second, cfg.EventsTimeout)
}

func TestLoad_MySQLRequiresSettings(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestValidate_UnknownDriver(t *testing.T) {
	err := Config{Port: "8080", DBDriver: "postgres"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported DB_DRIVER "postgres"`)
}

func TestProduction(t *testing.T) {
	assert.True(t, Config{Env: "prod"}.Production())
	assert.True(t, Config{Env: "Production"}.Production())
	assert.False(t, Config{Env: "test"}.Production())
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", " get, head ,")
	cfg := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())

	client := NewRedisClient(LoadRedisConfig(), zaptest.NewLogger(t))
	require.NotNil(t, client)
	_ = client.Close()

	mr.Close()
	assert.Nil(t, NewRedisClient(RedisConfig{Addr: mr.Addr()}, nil))
}
