package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/launcher"
)

// StoreBuilder creates a Store bound to the caller's backend cookies
type StoreBuilder interface {
	New(jar http.CookieJar, opener launcher.Opener) *app.Store
}

// CatalogHandler handles catalog state and play endpoints
type CatalogHandler struct {
	stores StoreBuilder
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(stores StoreBuilder) *CatalogHandler {
	return &CatalogHandler{stores: stores}
}

// noopOpener leaves opening the URL to the API client
type noopOpener struct{}

func (noopOpener) Open(context.Context, string) error { return nil }

// State handles GET /api/v1/state
func (h *CatalogHandler) State(w http.ResponseWriter, r *http.Request) {
	store := h.stores.New(middleware.GetJar(r.Context()), noopOpener{})
	store.Start(r.Context())

	response.JSON(w, http.StatusOK, response.StateFromSnapshot(store.Snapshot()))
}

// Play handles POST /api/v1/games/{id}/play
func (h *CatalogHandler) Play(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	store := h.stores.New(middleware.GetJar(r.Context()), noopOpener{})
	store.Start(r.Context())

	launch, err := store.Play(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LaunchFromApp(launch))
}
