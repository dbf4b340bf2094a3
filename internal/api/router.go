package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/api/handler"
	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Stores        handler.StoreBuilder
	Storage       storage.Storage
	SubmitTTL     time.Duration
	SecureCookies bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	catalogHandler := handler.NewCatalogHandler(cfg.Stores)
	authHandler := handler.NewAuthHandler(cfg.Stores, cfg.Storage, cfg.SubmitTTL, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Health check endpoint (no backend calls)
	api.HandleFunc("/health", healthHandler(cfg.Storage)).Methods(http.MethodGet)

	// Everything else is made on the caller's behalf with their backend cookies
	visitor := api.NewRoute().Subrouter()
	visitor.Use(middleware.Credentials(cfg.SecureCookies))

	visitor.HandleFunc("/state", catalogHandler.State).Methods(http.MethodGet)
	visitor.HandleFunc("/games/{id}/play", catalogHandler.Play).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	return r
}

func healthHandler(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := response.Health{Status: "ok", Storage: "ok"}
		if err := store.Ping(r.Context()); err != nil {
			health.Status = "degraded"
			health.Storage = "unreachable"
			response.JSON(w, http.StatusServiceUnavailable, health)
			return
		}
		response.JSON(w, http.StatusOK, health)
	}
}
