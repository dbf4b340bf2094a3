package storage

import (
	"context"
	"time"
)

// Storage holds the short-lived state shared across web requests.
// Only the auth submit guard lives here; users, sessions and the catalog are
// owned by the backend.
type Storage interface {
	// AcquireSubmit claims a submit token for ttl. It reports false if the
	// token is already held by a submission still in flight.
	AcquireSubmit(ctx context.Context, token string, ttl time.Duration) (bool, error)

	// ReleaseSubmit frees a submit token. Releasing an unknown token is not an error.
	ReleaseSubmit(ctx context.Context, token string) error

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}
