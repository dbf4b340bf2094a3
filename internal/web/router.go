package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/storage"
	"github.com/mcoot/gamehub/internal/web/handler"
	"github.com/mcoot/gamehub/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	Stores        handler.StoreBuilder
	Storage       storage.Storage
	SubmitTTL     time.Duration
	SecureCookies bool
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Stores)
	authHandler := handler.NewAuthHandler(cfg.Stores, cfg.Storage, cfg.SubmitTTL, cfg.Logger)
	playHandler := handler.NewPlayHandler(cfg.Stores, cfg.Logger)

	// Static files
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServerFS(static)))

	// Shell page makes no backend calls
	r.HandleFunc("/", homeHandler.Shell).Methods(http.MethodGet)

	// Everything else talks to the backend on the visitor's behalf
	visitor := r.NewRoute().Subrouter()
	visitor.Use(middleware.Flash())
	visitor.Use(middleware.Credentials(cfg.SecureCookies))

	visitor.HandleFunc("/app", homeHandler.App).Methods(http.MethodGet)
	visitor.HandleFunc("/auth/switch", authHandler.Switch).Methods(http.MethodGet)
	visitor.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	visitor.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	visitor.HandleFunc("/games/{id}/play", playHandler.Play).Methods(http.MethodPost)

	return r
}
