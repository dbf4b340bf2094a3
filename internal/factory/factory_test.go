package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/dependencies/mocks"
)

func TestNewRequiresBackendURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{BackendURL: "http://backend.test", StorageType: "etcd"})
	require.Error(t, err)
}

func TestMemoryStorageUsesConfiguredClock(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	a, err := New(Config{BackendURL: "http://backend.test", Clock: clk})
	require.NoError(t, err)
	assert.Same(t, clk, a.Clock)

	ctx := context.Background()
	ok, err := a.Storage.AcquireSubmit(ctx, "tok", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Storage.AcquireSubmit(ctx, "tok", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "guard still held")

	clk.Advance(2 * time.Minute)

	ok, err = a.Storage.AcquireSubmit(ctx, "tok", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "guard expires on the configured clock")
}
