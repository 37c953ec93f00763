package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the member server
type Config struct {
	DatabaseURL       string        `env:"DATABASE_URL"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	Port              string        `env:"PORT" envDefault:"8080"`
	PrometheusPort    string        `env:"PROMETHEUS_PORT" envDefault:"9090"`
	MigrationsEnabled bool          `env:"MIGRATIONS_ENABLED" envDefault:"true"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Pool              PoolConfig
	Telegram          TelegramConfig
}

// PoolConfig bounds the database connection pool. Requests beyond
// MaxOpenConns wait for a connection to be released.
type PoolConfig struct {
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// TelegramConfig enables member notifications when both fields are set
type TelegramConfig struct {
	Token  string `env:"TELEGRAM_TOKEN"`
	ChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether notifications should be sent
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// ClientConfig holds configuration for the memberctl client
type ClientConfig struct {
	APIURL   string        `env:"MEMBERS_API_URL" envDefault:"http://localhost:8080"`
	Timeout  time.Duration `env:"MEMBERS_API_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load loads server configuration from the environment, reading a .env
// file first when one exists.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Pool.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", cfg.Pool.MaxOpenConns)
	}
	return cfg, nil
}

// LoadClient loads memberctl configuration the same way as Load
func LoadClient() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// loadDotEnv reads .env without overriding variables already set.
// A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
