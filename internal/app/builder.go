package app

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/services/catalog"
	"github.com/mcoot/gamehub/internal/services/launcher"
	"github.com/mcoot/gamehub/internal/services/session"
)

// Builder creates Stores that talk to the backend with a given cookie jar.
// Each browser visitor or CLI invocation gets its own Store.
type Builder struct {
	Backend       *backend.Client
	SessionConfig session.Config
	Resolver      Resolver
	Logger        *slog.Logger
}

// New creates a Store whose backend calls carry the cookies in jar
func (b *Builder) New(jar http.CookieJar, opener launcher.Opener) *Store {
	client := b.Backend.WithJar(jar)
	return New(Deps{
		Session:  session.New(client, b.SessionConfig, b.Logger),
		Catalog:  catalog.New(client, b.Logger),
		Resolver: b.Resolver,
		Opener:   opener,
		Logger:   b.Logger,
	})
}
