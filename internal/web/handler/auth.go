package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/authflow"
	"github.com/mcoot/gamehub/internal/storage"
	"github.com/mcoot/gamehub/internal/web/middleware"
)

// AuthHandler handles the auth modal actions
type AuthHandler struct {
	stores    StoreBuilder
	storage   storage.Storage
	submitTTL time.Duration
	logger    *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(stores StoreBuilder, store storage.Storage, submitTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		stores:    stores,
		storage:   store,
		submitTTL: submitTTL,
		logger:    logger,
	}
}

// Switch closes the modal and reopens it in the requested mode.
// Rendering the new fragment completes the close transition.
func (h *AuthHandler) Switch(w http.ResponseWriter, r *http.Request) {
	to, ok := model.ParseAuthMode(r.URL.Query().Get("to"))
	if !ok {
		to = model.AuthModeLogin
	}

	store := h.stores.New(middleware.GetJar(r.Context()), nil)
	store.Start(r.Context())
	store.OpenAuth(to.Other())
	store.SwitchAuthMode()
	store.TransitionEnded()

	renderApp(w, r, http.StatusOK, pageData(r, store.Snapshot()))
}

// Login handles the sign-in form
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.AuthModeLogin)
}

// Signup handles the create-account form
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.AuthModeSignup)
}

func (h *AuthHandler) submit(w http.ResponseWriter, r *http.Request, mode model.AuthMode) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		redirect(w, r, "/app?auth="+string(mode))
		return
	}

	form := authflow.Form{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	store := h.stores.New(middleware.GetJar(ctx), nil)
	store.Start(ctx)
	store.OpenAuth(mode)
	ctrl := store.NewAuthController(mode)
	ctrl.SetForm(form)

	status := http.StatusOK
	token := r.FormValue("submit_token")
	acquired, err := h.acquire(r, token)
	switch {
	case err != nil:
		// guard storage is down; proceed unguarded rather than lock everyone out
		h.logger.Warn("submit guard unavailable", slog.String("error", err.Error()))
		_, err = ctrl.Submit(ctx)
	case !acquired:
		err = model.ErrSubmitInFlight
		status = http.StatusConflict
	default:
		defer h.release(r, token)
		_, err = ctrl.Submit(ctx)
	}

	if err != nil {
		data := pageData(r, store.Snapshot())
		data.Modal.Username = form.Username
		data.Modal.Email = form.Email
		data.Modal.Error = authflow.Message(err)
		renderApp(w, r, status, data)
		return
	}

	greeting := "Welcome back"
	if mode == model.AuthModeSignup {
		greeting = "Welcome"
	}
	if user := store.User(); user != nil {
		greeting += ", " + user.DisplayName()
	}
	middleware.SetFlash(w, "success", greeting+"!")
	redirect(w, r, "/app")
}

func (h *AuthHandler) acquire(r *http.Request, token string) (bool, error) {
	if token == "" {
		return true, nil
	}
	return h.storage.AcquireSubmit(r.Context(), token, h.submitTTL)
}

func (h *AuthHandler) release(r *http.Request, token string) {
	if token == "" {
		return
	}
	if err := h.storage.ReleaseSubmit(r.Context(), token); err != nil {
		h.logger.Warn("failed to release submit token", slog.String("error", err.Error()))
	}
}

// Logout ends the session. Local sign-out happens even if the backend call fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	jar := middleware.GetJar(r.Context())
	store := h.stores.New(jar, nil)
	store.Logout(r.Context())
	// the browser forgets the backend credentials even if the backend call failed
	jar.Clear()

	middleware.SetFlash(w, "info", "You have been signed out")
	redirect(w, r, "/app")
}
