package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("BAO_SESSION_FILE", "/tmp/bao-test-session")

	cfg := LoadEnv()

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Server.Timeout)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "/tmp/bao-test-session", cfg.Session.File)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("BAO_API_URL", "https://bao.example.edu/api/")
	t.Setenv("BAO_HTTP_TIMEOUT", "15s")
	t.Setenv("CACHE_BACKEND", "REDIS")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg := LoadEnv()

	assert.Equal(t, "https://bao.example.edu/api", cfg.Server.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("CACHE_TTL", "soon")

	cfg := LoadEnv()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}
