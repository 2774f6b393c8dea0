package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CustomerTokenLifetime is the fixed absolute lifetime of a customer token,
// measured from issuance rather than last use.
const CustomerTokenLifetime = 24 * time.Hour

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Stream       StreamConfig
	Availability AvailabilityConfig
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

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	CustomerTokenSecret     string
	SessionTimeoutMinutes   int
	SessionSweepIntervalSec int
	BcryptCost              int
	BootstrapAdminPassword  string
}

// StreamConfig controls the server-push update stream.
type StreamConfig struct {
	HeartbeatSeconds int
	SubscriberBuffer int
	EventChannel     string
}

// AvailabilityConfig controls availability query caching.
type AvailabilityConfig struct {
	CacheTTLSeconds int
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
			Name:                  getEnv("APP_NAME", "cocktail-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			CustomerTokenSecret:     getEnv("CUSTOMER_TOKEN_SECRET", "dev-secret"),
			SessionTimeoutMinutes:   getEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 60),
			SessionSweepIntervalSec: getEnvAsInt("SESSION_SWEEP_INTERVAL_SECONDS", 300),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
			BootstrapAdminPassword:  getEnv("STAFF_BOOTSTRAP_PASSWORD", "change-me"),
		},
		Stream: StreamConfig{
			HeartbeatSeconds: getEnvAsInt("STREAM_HEARTBEAT_SECONDS", 30),
			SubscriberBuffer: getEnvAsInt("STREAM_SUBSCRIBER_BUFFER", 16),
			EventChannel:     getEnv("STREAM_EVENT_CHANNEL", "cocktail-service:stock-events"),
		},
		Availability: AvailabilityConfig{
			CacheTTLSeconds: getEnvAsInt("AVAILABILITY_CACHE_TTL_SECONDS", 5),
		},
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

// SessionTimeout returns the staff-session idle timeout.
func (a AuthConfig) SessionTimeout() time.Duration {
	if a.SessionTimeoutMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(a.SessionTimeoutMinutes) * time.Minute
}

// SessionSweepInterval returns the background sweep period.
func (a AuthConfig) SessionSweepInterval() time.Duration {
	if a.SessionSweepIntervalSec <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(a.SessionSweepIntervalSec) * time.Second
}

// HeartbeatInterval returns the stream heartbeat period.
func (s StreamConfig) HeartbeatInterval() time.Duration {
	if s.HeartbeatSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.HeartbeatSeconds) * time.Second
}

// CacheTTL returns the availability cache TTL.
func (a AvailabilityConfig) CacheTTL() time.Duration {
	if a.CacheTTLSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(a.CacheTTLSeconds) * time.Second
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
