package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/gamehub/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeAuthRequired           = "AUTH_REQUIRED"
	CodeAuthFailed             = "AUTH_FAILED"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeSubmitInFlight         = "SUBMIT_IN_FLIGHT"
	CodeGameNotFound           = "GAME_NOT_FOUND"
	CodePlayRegistrationFailed = "PLAY_REGISTRATION_FAILED"
	CodeUnresolvedRedirect     = "UNRESOLVED_REDIRECT"
	CodeBackendUnavailable     = "BACKEND_UNAVAILABLE"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var authErr *model.AuthError
	var unresolved *model.UnresolvedRedirectError
	var playErr *model.PlayRegistrationError
	var catalogErr *model.CatalogError

	switch {
	case errors.Is(err, model.ErrAuthRequired):
		return &httpError{http.StatusUnauthorized, APIError{CodeAuthRequired, "Sign in to play"}}
	case errors.Is(err, model.ErrNoSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeAuthRequired, "No active session"}}
	case errors.Is(err, model.ErrSubmitInFlight):
		return &httpError{http.StatusConflict, APIError{CodeSubmitInFlight, "A submission is already in progress"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}

	case errors.As(err, &authErr):
		return authHTTPError(authErr)
	case errors.As(err, &unresolved):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnresolvedRedirect, "No launch target for " + unresolved.Game.Title}}
	case errors.As(err, &playErr):
		return &httpError{http.StatusBadGateway, APIError{CodePlayRegistrationFailed, "Could not start a game session"}}
	case errors.As(err, &catalogErr):
		return &httpError{http.StatusBadGateway, APIError{CodeBackendUnavailable, "Catalog service unavailable"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// authHTTPError keeps the user-facing message. Local validation failures are
// bad requests; backend rejections keep their 4xx status.
func authHTTPError(e *model.AuthError) *httpError {
	switch {
	case e.Status == 0 && e.Err == nil:
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, e.Message}}
	case e.Status >= 400 && e.Status < 500:
		return &httpError{e.Status, APIError{CodeAuthFailed, e.Message}}
	default:
		return &httpError{http.StatusBadGateway, APIError{CodeAuthFailed, e.Message}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
