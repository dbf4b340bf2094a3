package redis

import "time"

// Config holds Redis connection settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// KeyPrefix namespaces every key so several deployments can share one Redis
	KeyPrefix string

	// ConnectTimeout bounds the startup ping
	ConnectTimeout time.Duration

	// Pool settings
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns defaults for a single local Redis
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		KeyPrefix:      "gamehub",
		ConnectTimeout: 5 * time.Second,
		PoolSize:       10,
		MinIdleConns:   2,
	}
}
