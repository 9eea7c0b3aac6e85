package ratelimit

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(limit, time.Minute)
	l.now = clock.now
	return l, clock
}

func TestMemoryLimiter_WindowLimit(t *testing.T) {
	l, clock := newTestLimiter(2)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "u1"))
	require.NoError(t, l.Allow(ctx, "u1"))

	clock.advance(20 * time.Second)
	err := l.Allow(ctx, "u1")
	require.ErrorIs(t, err, ErrLimited)
	var limited *LimitedError
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, 40*time.Second, limited.RetryAfter)

	assert.NoError(t, l.Allow(ctx, "u2"), "keys are independent")

	clock.advance(40 * time.Second)
	assert.NoError(t, l.Allow(ctx, "u1"), "new window")
}

func TestMemoryLimiter_SweepsExpiredWindows(t *testing.T) {
	l, clock := newTestLimiter(1)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, l.Allow(ctx, k))
	}
	clock.advance(2 * time.Minute)
	require.NoError(t, l.Allow(ctx, "d"))
	assert.Len(t, l.windows, 1)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	l := NewMemoryLimiter(50, time.Hour)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(context.Background(), "shared") == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Allow(context.Background(), "anything"))
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("SCHOLAR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SCHOLAR_TEST_REDIS_ADDR not set")
	}
	rdb, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer rdb.Close()

	l := NewRedisLimiter(rdb, "scholar:test:"+uuid.NewString(), 2, time.Minute)
	ctx := context.Background()
	require.NoError(t, l.Allow(ctx, "u1"))
	require.NoError(t, l.Allow(ctx, "u1"))

	err = l.Allow(ctx, "u1")
	require.ErrorIs(t, err, ErrLimited)
	var limited *LimitedError
	require.ErrorAs(t, err, &limited)
	assert.LessOrEqual(t, limited.RetryAfter, time.Minute)
}
