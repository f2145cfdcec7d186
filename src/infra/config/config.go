// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
// A .env file is loaded best-effort for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=8080, APP_LOG_LEVEL=debug
type Config struct {
	// Server configuration (embedded to flatten env vars)
	Server ServerConfig

	// Database configuration (embedded to flatten env vars)
	Database DatabaseConfig

	// Redis configuration (optional snapshot cache)
	Redis RedisConfig

	// Logging configuration (embedded to flatten env vars)
	Log LogConfig

	// Auth configuration (token signing)
	Auth AuthConfig

	// Paystack configuration (payment gateway)
	Paystack PaystackConfig

	// Market configuration (domain capacities, throttling)
	Market MarketConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Host is the database host (default: localhost)
	Host string `envconfig:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `envconfig:"DB_PORT" default:"5432"`

	// User is the database user (default: postgres)
	User string `envconfig:"DB_USER" default:"postgres"`

	// Password is the database password (required in production)
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`

	// Name is the database name (default: tradefair)
	Name string `envconfig:"DB_NAME" default:"tradefair"`

	// SSLMode is the SSL mode for the connection (default: disable)
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the maximum number of idle connections (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// Migrate runs embedded migrations at startup when true (default: true)
	Migrate bool `envconfig:"DB_MIGRATE" default:"true"`
}

// RedisConfig holds the optional snapshot cache settings.
// Leave Addr empty to run without a cache.
type RedisConfig struct {
	// Addr is the Redis address, e.g. localhost:6379 (default: empty, disabled)
	Addr string `envconfig:"REDIS_ADDR" default:""`

	// SnapshotTTL bounds staleness of the capacity snapshot (default: 30s)
	SnapshotTTL time.Duration `envconfig:"REDIS_SNAPSHOT_TTL" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	// JWTSecret signs bearer tokens. Override in production.
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	// TokenTTL is how long issued tokens stay valid (default: 24h)
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// PaystackConfig holds payment gateway settings.
type PaystackConfig struct {
	// SecretKey authenticates API calls to the gateway.
	SecretKey string `envconfig:"PAYSTACK_SECRET_KEY" default:""`

	// BaseURL is the gateway API root (default: https://api.paystack.co)
	BaseURL string `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`

	// CallbackURL is where the gateway redirects after checkout (optional)
	CallbackURL string `envconfig:"PAYSTACK_CALLBACK_URL" default:""`
}

// MarketConfig holds marketplace tuning.
type MarketConfig struct {
	// ShedCapacity is the slot capacity applied to every domain (default: 100).
	// Loaded once at startup; the registry is immutable afterwards.
	ShedCapacity int `envconfig:"SHED_CAPACITY" default:"100"`

	// RateLimit is the allowed request rate per second (default: 50)
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"50"`

	// RateBurst is the rate limiter burst size (default: 100)
	RateBurst int `envconfig:"RATE_BURST" default:"100"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	// Best-effort .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Redis); err != nil {
		return nil, fmt.Errorf("failed to load redis config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Auth); err != nil {
		return nil, fmt.Errorf("failed to load auth config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Paystack); err != nil {
		return nil, fmt.Errorf("failed to load paystack config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Market); err != nil {
		return nil, fmt.Errorf("failed to load market config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main.go during startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
