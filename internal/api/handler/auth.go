package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/request"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/authflow"
	"github.com/mcoot/gamehub/internal/storage"
)

// SubmitTokenHeader optionally names a submission so retries of it are rejected while it is in flight
const SubmitTokenHeader = "X-Submit-Token"

// AuthHandler handles sign-in, sign-up and sign-out
type AuthHandler struct {
	stores    StoreBuilder
	storage   storage.Storage
	submitTTL time.Duration
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(stores StoreBuilder, store storage.Storage, submitTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		stores:    stores,
		storage:   store,
		submitTTL: submitTTL,
		logger:    logger,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	h.submit(w, r, model.AuthModeLogin, authflow.Form{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	h.submit(w, r, model.AuthModeSignup, authflow.Form{
		Username:        strings.TrimSpace(req.Username),
		Email:           strings.TrimSpace(req.Email),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
}

func (h *AuthHandler) submit(w http.ResponseWriter, r *http.Request, mode model.AuthMode, form authflow.Form) {
	ctx := r.Context()

	if token := r.Header.Get(SubmitTokenHeader); token != "" {
		ok, err := h.storage.AcquireSubmit(ctx, token, h.submitTTL)
		switch {
		case err != nil:
			h.logger.Warn("submit guard unavailable", slog.String("error", err.Error()))
		case !ok:
			WriteError(w, model.ErrSubmitInFlight)
			return
		default:
			defer func() {
				if err := h.storage.ReleaseSubmit(ctx, token); err != nil {
					h.logger.Warn("failed to release submit token", slog.String("error", err.Error()))
				}
			}()
		}
	}

	store := h.stores.New(middleware.GetJar(ctx), noopOpener{})
	ctrl := store.NewAuthController(mode)
	ctrl.SetForm(form)

	user, err := ctrl.Submit(ctx)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if mode == model.AuthModeSignup {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.AuthResponse{User: response.UserFromModel(user)})
}

// Logout handles POST /api/v1/auth/logout. The caller's backend cookies are
// cleared even when the backend call fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	jar := middleware.GetJar(r.Context())
	store := h.stores.New(jar, noopOpener{})
	store.Logout(r.Context())
	jar.Clear()

	response.NoContent(w)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	store := h.stores.New(middleware.GetJar(r.Context()), noopOpener{})
	store.Start(r.Context())

	user := store.User()
	if user == nil {
		WriteError(w, model.ErrNoSession)
		return
	}
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
