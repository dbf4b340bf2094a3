package cli

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds CLI configuration
type Config struct {
	BackendURL  string
	SessionPath string
	CookieFile  string
	Timeout     time.Duration
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		BackendURL:  os.Getenv("GAMEHUB_BACKEND_URL"),
		SessionPath: getEnvOrDefault("GAMEHUB_SESSION_PATH", "/api/auth/me"),
		CookieFile:  getEnvOrDefault("GAMEHUB_COOKIE_FILE", defaultCookieFile()),
		Timeout:     10 * time.Second,
		Output:      "text",
	}
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gamehub", "cookies.json")
	}
	return filepath.Join(home, ".gamehub", "cookies.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
