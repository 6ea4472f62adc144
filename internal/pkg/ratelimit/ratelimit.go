package ratelimit

import (
	"sync"
	"time"

	"fin-approvals/internal/pkg/clock"
)

type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter is a process-wide fixed-window counter keyed by caller-supplied
// strings (client IPs). Buckets whose window has elapsed are replaced
// wholesale on the next hit and swept periodically, so the map stays bounded.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]bucket
	limit   int
	window  time.Duration
	clock   clock.Clock

	lastSweep time.Time
}

func NewLimiter(limit int, window time.Duration, clk clock.Clock) *Limiter {
	return &Limiter{
		buckets: make(map[string]bucket),
		limit:   limit,
		window:  window,
		clock:   clk,
	}
}

// Allow records one hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) > l.window {
		b = bucket{windowStart: now}
	}
	b.count++
	l.buckets[key] = b

	return b.count <= l.limit
}

// sweepLocked evicts expired buckets at most once per window.
func (l *Limiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.windowStart) > l.window {
			delete(l.buckets, k)
		}
	}
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
