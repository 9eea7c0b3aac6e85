package main

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/config"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
)

func limiterConfig(addr string) config.Config {
	cfg := config.Config{}
	cfg.HTTP.RateLimitPerMin = 5
	cfg.Redis.Addr = addr
	return cfg
}

func TestNewLimiter_MemoryWithoutRedis(t *testing.T) {
	limiter, closeLimiter := newLimiter(context.Background(), limiterConfig(""), logger.NewNop())
	assert.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
	assert.NoError(t, closeLimiter())
}

func TestNewLimiter_FallsBackWhenRedisUnreachable(t *testing.T) {
	limiter, closeLimiter := newLimiter(context.Background(), limiterConfig("127.0.0.1:1"), logger.NewNop())
	assert.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
	assert.NoError(t, closeLimiter())
}

func TestNewLimiter_CloseReleasesRedisClient(t *testing.T) {
	addr := os.Getenv("SCHOLAR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCHOLAR_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	limiter, closeLimiter := newLimiter(ctx, limiterConfig(addr), logger.NewNop())
	require.IsType(t, &ratelimit.RedisLimiter{}, limiter)
	require.NoError(t, limiter.Allow(ctx, "close-test"))

	require.NoError(t, closeLimiter())
	assert.ErrorIs(t, limiter.Allow(ctx, "close-test"), goredis.ErrClosed)
}
