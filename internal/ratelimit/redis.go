package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisLimiter shares windows across processes through Redis INCR and EXPIRE NX (Redis 7+).
type RedisLimiter struct {
	rdb    goredis.UniversalClient
	prefix string
	limit  int
	period time.Duration
}

func NewRedisLimiter(rdb goredis.UniversalClient, prefix string, limit int, period time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "scholar:rl"
	}
	return &RedisLimiter{rdb: rdb, prefix: prefix, limit: limit, period: period}
}

// Dial connects and pings a Redis server.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	k := l.prefix + ":" + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.period)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", key, err)
	}

	if incr.Val() > int64(l.limit) {
		retry := ttl.Val()
		if retry <= 0 {
			retry = l.period
		}
		return &LimitedError{RetryAfter: retry}
	}
	return nil
}
