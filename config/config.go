package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Session   SessionConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	AppEnv string
	// BaseURL of the BAO REST backend.
	BaseURL string
	// Timeout of 0 leaves requests unbounded; callers still cancel through ctx.
	Timeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	Filename          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SessionConfig struct {
	File string
}

type CacheConfig struct {
	Backend string // memory | redis
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
}

type DashboardConfig struct {
	RefreshSpec string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:  getEnv("APP_ENV", "dev"),
			BaseURL: strings.TrimRight(getEnv("BAO_API_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvDuration("BAO_HTTP_TIMEOUT", 0),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			Filename:          getEnv("LOGGER_FILE", ""),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", true),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Session: SessionConfig{
			File: getEnv("BAO_SESSION_FILE", defaultSessionFile()),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_ACTIVITY", "bao.activity"),
			GroupID: getEnv("KAFKA_GROUP_ID", "bao-console"),
		},
		Dashboard: DashboardConfig{
			RefreshSpec: getEnv("DASHBOARD_REFRESH", "@every 30s"),
		},
	}
}

// IsDevelopment reports whether logs should use the development encoder.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Server.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "bao", "session")
	}
	return filepath.Join(home, ".bao", "session")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
