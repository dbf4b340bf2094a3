package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/views"
	"github.com/mcoot/gamehub/internal/web/middleware"
	"github.com/mcoot/gamehub/internal/web/templates/pages"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect sends the browser elsewhere.
// htmx requests get an HX-Redirect header so the whole page navigates.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func renderComponent(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = c.Render(r.Context(), w)
}

// renderApp writes the catalog page: the #app fragment for htmx, a full document otherwise
func renderApp(w http.ResponseWriter, r *http.Request, status int, data views.AppData) {
	if isHTMX(r) {
		renderComponent(w, r, status, pages.App(data))
		return
	}
	renderComponent(w, r, status, pages.AppPage(data))
}

// pageData builds view data from a Store snapshot. Every render carries a fresh
// submit token so a re-rendered form is a new submission.
func pageData(r *http.Request, state app.State) views.AppData {
	return views.AppData{
		User:    state.User,
		Loading: state.Loading,
		Games:   state.Games,
		Catalog: state.Catalog,
		Modal: views.ModalData{
			Open:        state.AuthModal.Open,
			Mode:        state.AuthModal.Mode,
			SubmitToken: uuid.NewString(),
		},
		Flash: middleware.GetFlash(r.Context()),
	}
}
