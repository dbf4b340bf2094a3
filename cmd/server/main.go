package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/config"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/tracing"
	"github.com/mcoot/gamehub/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout)
	stop()
	os.Exit(code)
}

// run serves until ctx is cancelled and returns the process exit code.
// Deferred cleanup, tracing shutdown included, completes before it returns.
func run(ctx context.Context, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(out, nil)).Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	shutdownTracing, err := tracing.Setup(ctx, "gamehub", cfg.OTelEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	// Create application factory
	app, err := factory.New(factory.ConfigFromEnv(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Stores:        app.Stores,
		Storage:       app.Storage,
		SubmitTTL:     cfg.SubmitTTL,
		SecureCookies: cfg.SecureCookies,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:        logger,
		Stores:        app.Stores,
		Storage:       app.Storage,
		SubmitTTL:     cfg.SubmitTTL,
		SecureCookies: cfg.SecureCookies,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	logger.Info("starting gamehub",
		slog.String("addr", server.Addr()),
		slog.String("backend", cfg.BackendURL),
		slog.String("storage", cfg.StorageType),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("server stopped")
	return 0
}
