package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/config"
	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/services/launcher"
	"github.com/mcoot/gamehub/internal/services/session"
	"github.com/mcoot/gamehub/internal/storage"
	"github.com/mcoot/gamehub/internal/storage/memory"
	redisstorage "github.com/mcoot/gamehub/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageTypeMemory
	StorageTypeRedis  = config.StorageTypeRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Backend *backend.Client

	// Services
	Resolver *launcher.Resolver
	Stores   *app.Builder
}

// Config holds configuration for the application factory
type Config struct {
	// BackendURL is the base URL of the auth and catalog services (required)
	BackendURL string
	// BackendTimeout bounds every backend call
	// If zero, defaults to 10 seconds
	BackendTimeout time.Duration
	// SessionConfig holds configuration for the session service (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Clock drives submit-guard expiry in memory storage (optional)
	// If nil, the system clock is used
	Clock clock.Clock
}

// ConfigFromEnv maps the environment configuration onto a factory Config
func ConfigFromEnv(cfg config.Config, logger *slog.Logger) Config {
	out := Config{
		BackendURL:     cfg.BackendURL,
		BackendTimeout: cfg.BackendTimeout,
		SessionConfig:  session.Config{CurrentPath: cfg.SessionPath},
		Logger:         logger,
		StorageType:    cfg.StorageType,
	}
	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		out.RedisConfig = &redisCfg
	}
	return out
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.BackendURL == "" {
		return nil, errors.New("BackendURL is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.NewWithClock(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(context.Background(), *cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	timeout := cfg.BackendTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	sessionCfg := cfg.SessionConfig
	if sessionCfg.CurrentPath == "" {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clk, backend.NewClient(cfg.BackendURL, timeout), sessionCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, client *backend.Client, sessionCfg session.Config, logger *slog.Logger) *App {
	resolver := launcher.NewResolver()

	return &App{
		Storage:  store,
		Clock:    clk,
		Backend:  client,
		Resolver: resolver,
		Stores: &app.Builder{
			Backend:       client,
			SessionConfig: sessionCfg,
			Resolver:      resolver,
			Logger:        logger,
		},
	}
}
