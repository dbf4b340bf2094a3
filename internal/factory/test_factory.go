package factory

import (
	"log/slog"
	"time"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/dependencies/mocks"
	"github.com/mcoot/gamehub/internal/services/session"
	"github.com/mcoot/gamehub/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App against backendURL with in-memory storage and a mock clock
func NewTestApp(backendURL string, logger *slog.Logger) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.NewWithClock(mockClock)
	client := backend.NewClient(backendURL, 5*time.Second)

	app := newWithDependencies(store, mockClock, client, session.DefaultConfig(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
