package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamehub/internal/storage"
)

// Storage keeps submit guards in Redis so every server instance sees the same
// in-flight submissions. Expiry is left to Redis key TTLs.
type Storage struct {
	client *redis.Client
	prefix string
}

var _ storage.Storage = (*Storage)(nil)

// New connects to Redis and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// AcquireSubmit claims token with SET NX; the key expires after ttl even if
// the holder never releases it
func (s *Storage) AcquireSubmit(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.submitKey(token), 1, ttl).Result()
}

// ReleaseSubmit deletes the guard for token
func (s *Storage) ReleaseSubmit(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.submitKey(token)).Err()
}

// Ping checks the Redis connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
