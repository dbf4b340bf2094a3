package handler

import (
	"net/http"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/launcher"
	"github.com/mcoot/gamehub/internal/web/middleware"
	"github.com/mcoot/gamehub/internal/web/templates/pages"
)

// StoreBuilder creates a Store bound to the visitor's backend cookies
type StoreBuilder interface {
	New(jar http.CookieJar, opener launcher.Opener) *app.Store
}

// HomeHandler handles the catalog page
type HomeHandler struct {
	stores StoreBuilder
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(stores StoreBuilder) *HomeHandler {
	return &HomeHandler{stores: stores}
}

// Shell renders the loading skeleton, which fetches /app once loaded
func (h *HomeHandler) Shell(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, http.StatusOK, pages.Shell())
}

// App renders the catalog for the visitor.
// ?auth=login or ?auth=signup opens the auth modal for a signed-out visitor.
func (h *HomeHandler) App(w http.ResponseWriter, r *http.Request) {
	store := h.stores.New(middleware.GetJar(r.Context()), nil)
	store.Start(r.Context())

	if mode, ok := model.ParseAuthMode(r.URL.Query().Get("auth")); ok && store.User() == nil {
		store.OpenAuth(mode)
	}

	renderApp(w, r, http.StatusOK, pageData(r, store.Snapshot()))
}
