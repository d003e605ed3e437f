package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Logger   LoggerConfig
	Cache    CacheConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// UpstreamConfig describes the remote Aurigraph ledger API.
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
	RefreshPath    string
	DemoMode       bool
	Retry          RetryConfig
}

// RetryConfig tunes the retry-with-backoff primitive for upstream calls.
type RetryConfig struct {
	MaxAttempts int
	BaseDelayMS int
	Multiplier  float64
	JitterRatio float64
	MaxDelayMS  int
}

// SessionConfig controls persisted session state.
type SessionConfig struct {
	EncryptionKey string
	KeyPrefix     string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CacheConfig sets TTLs for cached upstream queries.
type CacheConfig struct {
	ExplorerTTLSeconds  int
	ValidatorTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "enterprise-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "https://api.aurigraph.io"),
			TimeoutSeconds: getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 15),
			RefreshPath:    getEnv("UPSTREAM_REFRESH_PATH", "/api/auth/refresh"),
			DemoMode:       getEnvAsBool("UPSTREAM_DEMO_MODE", true),
			Retry: RetryConfig{
				MaxAttempts: getEnvAsInt("UPSTREAM_RETRY_MAX_ATTEMPTS", 3),
				BaseDelayMS: getEnvAsInt("UPSTREAM_RETRY_BASE_DELAY_MS", 500),
				Multiplier:  getEnvAsFloat("UPSTREAM_RETRY_MULTIPLIER", 2.0),
				JitterRatio: getEnvAsFloat("UPSTREAM_RETRY_JITTER_RATIO", 0.1),
				MaxDelayMS:  getEnvAsInt("UPSTREAM_RETRY_MAX_DELAY_MS", 10000),
			},
		},
		Session: SessionConfig{
			EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "dev-session-key"),
			KeyPrefix:     getEnv("SESSION_KEY_PREFIX", "portal:session"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			ExplorerTTLSeconds:  getEnvAsInt("CACHE_EXPLORER_TTL_SECONDS", 10),
			ValidatorTTLSeconds: getEnvAsInt("CACHE_VALIDATOR_TTL_SECONDS", 30),
		},
	}

	if cfg.Upstream.Retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("UPSTREAM_RETRY_MAX_ATTEMPTS must be >= 1")
	}
	if cfg.Upstream.Retry.Multiplier <= 1 {
		return nil, fmt.Errorf("UPSTREAM_RETRY_MULTIPLIER must be > 1")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-attempt upstream timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// BaseDelay returns the initial backoff delay.
func (r RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMS) * time.Millisecond
}

// MaxDelay returns the backoff ceiling.
func (r RetryConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelayMS) * time.Millisecond
}

// ExplorerTTL returns the cache TTL for explorer queries.
func (c CacheConfig) ExplorerTTL() time.Duration {
	return time.Duration(c.ExplorerTTLSeconds) * time.Second
}

// ValidatorTTL returns the cache TTL for validator queries.
func (c CacheConfig) ValidatorTTL() time.Duration {
	return time.Duration(c.ValidatorTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
