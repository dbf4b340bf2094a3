package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors used across the application
var (
	// ErrNoSession means the session check found no authenticated user
	ErrNoSession = errors.New("no active session")

	// ErrAuthRequired means an action needs a signed-in user; the auth modal was opened
	ErrAuthRequired = errors.New("authentication required")

	// ErrSubmitInFlight means an auth form submission is already being processed
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrGameNotFound means the game id is not in the current catalog
	ErrGameNotFound = errors.New("game not found")

	// ErrMissingUser means a successful auth response carried no user
	ErrMissingUser = errors.New("auth response has no user")
)

// AuthError is a login/signup failure with a message meant for the user
type AuthError struct {
	Message string
	Status  int // HTTP status from the backend, 0 for local or transport failures
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewValidationError creates an AuthError for a failed local validation rule
func NewValidationError(message string) *AuthError {
	return &AuthError{Message: message}
}

// CatalogError is a failure fetching the game list
type CatalogError struct {
	Status int
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch catalog: HTTP %d", e.Status)
	}
	return fmt.Sprintf("fetch catalog: %v", e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// PlayRegistrationError is a failure registering a play with the backend
type PlayRegistrationError struct {
	GameID GameID
	Status int
	Err    error
}

func (e *PlayRegistrationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("register play for %s: HTTP %d", e.GameID, e.Status)
	}
	return fmt.Sprintf("register play for %s: %v", e.GameID, e.Err)
}

func (e *PlayRegistrationError) Unwrap() error {
	return e.Err
}

// Is reports a backend 404 as ErrGameNotFound
func (e *PlayRegistrationError) Is(target error) bool {
	return target == ErrGameNotFound && e.Status == http.StatusNotFound
}

// UnresolvedRedirectError means a play was registered but no launch target
// matches the game
type UnresolvedRedirectError struct {
	Game Game
}

func (e *UnresolvedRedirectError) Error() string {
	return fmt.Sprintf("no launch target for game %q (%s)", e.Game.Title, e.Game.ID)
}
