package middleware

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/mcoot/gamehub/internal/backend"
)

type jarKey struct{}

// GetJar returns the visitor's backend cookie jar.
// Outside the Credentials middleware an empty jar is returned.
func GetJar(ctx context.Context) *backend.RelayJar {
	if jar, ok := ctx.Value(jarKey{}).(*backend.RelayJar); ok {
		return jar
	}
	return backend.NewRelayJar(nil)
}

// Credentials relays backend session cookies through the browser.
//
// The browser's cookies, minus any named in skip, seed a jar used for every
// backend call made while serving the request. Cookies the backend sets are
// re-issued to the browser host-only with path "/" just before the response
// header is written.
func Credentials(secure bool, skip ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var seed []*http.Cookie
			for _, c := range r.Cookies() {
				if !slices.Contains(skip, c.Name) {
					seed = append(seed, c)
				}
			}
			jar := backend.NewRelayJar(seed)

			rw := &relayWriter{ResponseWriter: w, jar: jar, secure: secure}
			ctx := context.WithValue(r.Context(), jarKey{}, jar)
			next.ServeHTTP(rw, r.WithContext(ctx))
			rw.flushCookies()
		})
	}
}

type relayWriter struct {
	http.ResponseWriter
	jar    *backend.RelayJar
	secure bool
	once   sync.Once
}

func (rw *relayWriter) flushCookies() {
	rw.once.Do(func() {
		for _, c := range rw.jar.Changes() {
			relayed := &http.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     "/",
				MaxAge:   c.MaxAge,
				Expires:  c.Expires,
				HttpOnly: true,
				Secure:   rw.secure,
				SameSite: http.SameSiteLaxMode,
			}
			http.SetCookie(rw.ResponseWriter, relayed)
		}
	})
}

func (rw *relayWriter) WriteHeader(status int) {
	rw.flushCookies()
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *relayWriter) Write(b []byte) (int, error) {
	rw.flushCookies()
	return rw.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (rw *relayWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
