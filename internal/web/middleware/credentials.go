package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/middleware"
)

// GetJar returns the visitor's backend cookie jar
func GetJar(ctx context.Context) *backend.RelayJar {
	return middleware.GetJar(ctx)
}

// Credentials relays backend cookies for the web interface.
// The flash cookie belongs to gamehub and is never sent to the backend.
func Credentials(secure bool) func(http.Handler) http.Handler {
	return middleware.Credentials(secure, FlashCookieName)
}
