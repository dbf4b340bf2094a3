package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/tracing"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), "gamehub-test", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestSetupWithEndpoint(t *testing.T) {
	// Non-routable address: nothing is exported because no spans are recorded
	shutdown, err := tracing.Setup(context.Background(), "gamehub-test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
