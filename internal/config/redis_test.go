package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), Settings{RedisURL: "memcached://cache:11211"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse REDIS_URL")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), Settings{RedisURL: "redis://127.0.0.1:1/0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}
