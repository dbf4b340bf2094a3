package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/model"
)

// Backend endpoints
const (
	DefaultCurrentPath = "/api/auth/me"
	loginPath          = "/api/auth/login"
	signupPath         = "/api/auth/signup"
	logoutPath         = "/api/auth/logout"
)

// Generic messages used when the backend gives no reason
const (
	loginFailedMessage  = "Login failed"
	signupFailedMessage = "Signup failed"
)

// Service wraps the external authentication service
type Service struct {
	client      *backend.Client
	currentPath string
	logger      *slog.Logger
}

// Config holds configuration for the session service
type Config struct {
	// CurrentPath is the session-check endpoint
	CurrentPath string
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CurrentPath: DefaultCurrentPath,
	}
}

// New creates a new session Service
func New(client *backend.Client, cfg Config, logger *slog.Logger) *Service {
	if cfg.CurrentPath == "" {
		cfg.CurrentPath = DefaultConfig().CurrentPath
	}
	return &Service{
		client:      client,
		currentPath: cfg.CurrentPath,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User *model.User `json:"user"`
}

// Current returns the user behind the session cookie, or nil.
// A failed check is indistinguishable from being signed out.
func (s *Service) Current(ctx context.Context) *model.User {
	var user model.User
	if err := s.client.Get(ctx, s.currentPath, &user); err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Debug("no active session", slog.Int("status", statusErr.Status))
		} else {
			s.logger.Warn("session check failed", slog.String("error", err.Error()))
		}
		return nil
	}
	if user.ID == "" && user.Email == "" && user.Username == "" {
		return nil
	}
	return &user
}

// Login authenticates with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp authResponse
	if err := s.client.Post(ctx, loginPath, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, toAuthError(err, loginFailedMessage)
	}
	if resp.User == nil {
		return nil, &model.AuthError{Message: loginFailedMessage, Err: model.ErrMissingUser}
	}
	return resp.User, nil
}

// Signup creates an account. Local validation happens before this is called;
// the backend still validates uniqueness.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	req := signupRequest{Username: username, Email: email, Password: password}
	var resp authResponse
	if err := s.client.Post(ctx, signupPath, req, &resp); err != nil {
		return nil, toAuthError(err, signupFailedMessage)
	}
	if resp.User == nil {
		return nil, &model.AuthError{Message: signupFailedMessage, Err: model.ErrMissingUser}
	}
	return resp.User, nil
}

// Logout ends the backend session. Failures are returned for the caller to
// report; it clears its local state regardless.
func (s *Service) Logout(ctx context.Context) error {
	return s.client.Post(ctx, logoutPath, nil, nil)
}

// toAuthError converts a backend failure into a user-facing AuthError
func toAuthError(err error, fallback string) *model.AuthError {
	authErr := &model.AuthError{Message: fallback, Err: err}
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		authErr.Status = statusErr.Status
		if statusErr.Message != "" {
			authErr.Message = statusErr.Message
		}
	}
	return authErr
}
