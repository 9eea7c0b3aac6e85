// Package ratelimit provides per-key fixed-window limiters. Limiters are
// plain values owned by the caller and passed to whoever enforces them.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrLimited is returned (wrapped in *LimitedError) when a key has used its
// allowance for the current window.
var ErrLimited = errors.New("rate limit exceeded")

type LimitedError struct {
	RetryAfter time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("%v: retry after %s", ErrLimited, e.RetryAfter.Round(time.Second))
}

func (e *LimitedError) Unwrap() error { return ErrLimited }

// Limiter admits or rejects one event for key.
type Limiter interface {
	Allow(ctx context.Context, key string) error
}

// Noop admits everything.
type Noop struct{}

func (Noop) Allow(context.Context, string) error { return nil }

type window struct {
	start time.Time
	count int
}

// MemoryLimiter keeps windows in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryLimiter allows limit events per key in each period.
func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.period {
		w = &window{start: now}
		l.windows[key] = w
		l.sweep(now)
	}
	if w.count >= l.limit {
		return &LimitedError{RetryAfter: w.start.Add(l.period).Sub(now)}
	}
	w.count++
	return nil
}

// sweep drops expired windows. Called with mu held.
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, k)
		}
	}
}
