package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/gamehub/internal/views"
)

type contextKey string

const (
	// FlashCookieName is the one cookie gamehub owns; it is never relayed to the backend
	FlashCookieName = "flash"
	flashContextKey = contextKey("flash")
)

// GetFlash retrieves the flash message from the request context
// Returns nil if no flash message is set
func GetFlash(ctx context.Context) *views.Flash {
	flash, _ := ctx.Value(flashContextKey).(*views.Flash)
	return flash
}

// SetFlash sets a flash message to be displayed on the next request
func SetFlash(w http.ResponseWriter, flashType, message string) {
	// Encode as type:message
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    flashType + ":" + message,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash returns middleware that reads and clears flash messages
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *views.Flash

			cookie, err := r.Cookie(FlashCookieName)
			if err == nil && cookie.Value != "" {
				flash = parseFlash(cookie.Value)

				http.SetCookie(w, &http.Cookie{
					Name:     FlashCookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					Expires:  time.Unix(0, 0),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseFlash(value string) *views.Flash {
	kind, message, found := strings.Cut(value, ":")
	if !found {
		return &views.Flash{Type: "info", Message: value}
	}
	return &views.Flash{Type: kind, Message: message}
}
