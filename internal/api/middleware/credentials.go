package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/middleware"
)

// Credentials relays backend session cookies for API clients
func Credentials(secure bool) func(http.Handler) http.Handler {
	return middleware.Credentials(secure)
}

// GetJar returns the caller's backend cookie jar
func GetJar(ctx context.Context) *backend.RelayJar {
	return middleware.GetJar(ctx)
}
