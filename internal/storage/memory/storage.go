package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.Mutex
	clock clock.Clock

	submits map[string]time.Time // token -> expiry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return NewWithClock(clock.New())
}

// NewWithClock creates an in-memory storage that reads time from c
func NewWithClock(c clock.Clock) *Storage {
	return &Storage{
		clock:   c,
		submits: make(map[string]time.Time),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AcquireSubmit(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweepLocked(now)

	if _, held := s.submits[token]; held {
		return false, nil
	}
	s.submits[token] = now.Add(ttl)
	return true, nil
}

func (s *Storage) ReleaseSubmit(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submits, token)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

// sweepLocked drops expired tokens
func (s *Storage) sweepLocked(now time.Time) {
	for token, expiry := range s.submits {
		if !now.Before(expiry) {
			delete(s.submits, token)
		}
	}
}
