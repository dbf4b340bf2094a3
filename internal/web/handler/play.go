package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/views"
	"github.com/mcoot/gamehub/internal/web/middleware"
)

// PlayHandler handles the play action on a game card
type PlayHandler struct {
	stores StoreBuilder
	logger *slog.Logger
}

// NewPlayHandler creates a new PlayHandler
func NewPlayHandler(stores StoreBuilder, logger *slog.Logger) *PlayHandler {
	return &PlayHandler{stores: stores, logger: logger}
}

// launchMarker is the Opener used by the web front-end: the URL is rendered as a
// marker and the page script opens it in a new tab
type launchMarker struct {
	url string
}

func (m *launchMarker) Open(_ context.Context, url string) error {
	m.url = url
	return nil
}

// Play registers a play and renders the launch marker.
// Signed-out visitors are sent to the sign-in modal instead.
func (h *PlayHandler) Play(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := model.GameID(mux.Vars(r)["id"])

	marker := &launchMarker{}
	store := h.stores.New(middleware.GetJar(ctx), marker)
	store.Start(ctx)

	_, err := store.Play(ctx, id)

	var unresolved *model.UnresolvedRedirectError
	switch {
	case err == nil:
	case errors.Is(err, model.ErrAuthRequired):
		redirect(w, r, "/app?auth=login")
		return
	case app.IsRecoverable(err):
		// already logged by the store; the visitor stays on the catalog
	case errors.As(err, &unresolved):
		data := pageData(r, store.Snapshot())
		data.Flash = &views.Flash{Type: "info", Message: unresolved.Game.Title + " is not available to play yet"}
		renderApp(w, r, http.StatusOK, data)
		return
	default:
		h.logger.Error("play failed", slog.String("game_id", string(id)), slog.String("error", err.Error()))
		data := pageData(r, store.Snapshot())
		data.Flash = &views.Flash{Type: "error", Message: "Could not start the game. Please try again."}
		renderApp(w, r, http.StatusOK, data)
		return
	}

	data := pageData(r, store.Snapshot())
	data.LaunchURL = marker.url
	renderApp(w, r, http.StatusOK, data)
}
