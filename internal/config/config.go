package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds the server configuration, read from the environment
type Config struct {
	// BackendURL is the single base URL for the auth and catalog services.
	// Paths such as /api/games are appended to it. There is no default.
	BackendURL string `env:"GAMEHUB_BACKEND_URL"`
	// SessionPath is the session-check endpoint (/api/auth/me or /api/auth/current-user)
	SessionPath string `env:"GAMEHUB_SESSION_PATH" envDefault:"/api/auth/me"`
	// BackendTimeout bounds every backend call
	BackendTimeout time.Duration `env:"GAMEHUB_BACKEND_TIMEOUT" envDefault:"10s"`

	Host string `env:"GAMEHUB_HOST" envDefault:""`
	Port int    `env:"GAMEHUB_PORT" envDefault:"8080"`

	// StorageType selects the submit guard backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	// SubmitTTL is how long an auth form submission holds its guard
	SubmitTTL time.Duration `env:"GAMEHUB_SUBMIT_TTL" envDefault:"30s"`

	// SecureCookies marks relayed cookies as Secure (enable behind HTTPS)
	SecureCookies bool   `env:"GAMEHUB_SECURE_COOKIES" envDefault:"false"`
	LogLevel      string `env:"GAMEHUB_LOG_LEVEL" envDefault:"info"`

	// OTelEndpoint enables trace export when set
	OTelEndpoint string `env:"GAMEHUB_OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and validates it
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and normalises the backend URL
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return errors.New("GAMEHUB_BACKEND_URL is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GAMEHUB_BACKEND_URL must be an absolute URL, got %q", c.BackendURL)
	}
	c.BackendURL = strings.TrimSuffix(c.BackendURL, "/")

	if !strings.HasPrefix(c.SessionPath, "/") {
		c.SessionPath = "/" + c.SessionPath
	}

	switch c.StorageType {
	case "", StorageTypeMemory:
		c.StorageType = StorageTypeMemory
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory' or 'redis'", c.StorageType)
	}

	if c.BackendTimeout <= 0 {
		return errors.New("GAMEHUB_BACKEND_TIMEOUT must be positive")
	}
	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
