package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"notewell/internal/config"
)

// NewRedis creates a Redis client for the render cache from the given
// config. Returns (nil, nil) when no URL is configured -- the cache is
// strictly optional and every caller must tolerate a nil client.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify the connection is alive before returning.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}
