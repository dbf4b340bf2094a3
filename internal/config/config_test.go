package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBackendURL(t *testing.T) {
	t.Setenv("GAMEHUB_BACKEND_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GAMEHUB_BACKEND_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GAMEHUB_BACKEND_URL", "https://games.example.com/")
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://games.example.com", cfg.BackendURL)
	assert.Equal(t, "/api/auth/me", cfg.SessionPath)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 30*time.Second, cfg.SubmitTTL)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GAMEHUB_BACKEND_URL", "http://backend:5000")
	t.Setenv("GAMEHUB_SESSION_PATH", "api/auth/current-user")
	t.Setenv("GAMEHUB_BACKEND_TIMEOUT", "2s")
	t.Setenv("GAMEHUB_PORT", "9000")
	t.Setenv("GAMEHUB_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/current-user", cfg.SessionPath)
	assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"relative url", Config{BackendURL: "/api", BackendTimeout: time.Second}, "absolute URL"},
		{"redis without url", Config{BackendURL: "http://b", StorageType: StorageTypeRedis, BackendTimeout: time.Second}, "REDIS_URL"},
		{"unknown storage", Config{BackendURL: "http://b", StorageType: "disk", BackendTimeout: time.Second}, "invalid STORAGE_TYPE"},
		{"zero timeout", Config{BackendURL: "http://b"}, "TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
