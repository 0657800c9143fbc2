package config

// This file builds the Redis client from REDIS_URL.  Redis is optional for
// the backend: when it cannot be reached the caller gets an error and is
// expected to carry on without it.

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// NewRedisClient parses s.RedisURL (redis:// or rediss://, optional
// password and database number) and pings the server.  The client is
// closed again when the ping fails.
func NewRedisClient(ctx context.Context, s Settings) (*redis.Client, error) {
	opts, err := redis.ParseURL(s.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return client, nil
}
