// Package ratelimit provides the in-process request limiter used when no
// Redis is configured.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const idleTTL = 30 * time.Minute

// window is one client's counter. It resets once start+length has passed.
type window struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

// MemoryLimiter counts hits per client key in fixed windows, matching the
// Redis-backed limiter: at most max hits from the first hit of a window
// until the window ends.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	length  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(max int, length time.Duration) *MemoryLimiter {
	if max < 1 {
		max = 1
	}
	return &MemoryLimiter{
		windows: make(map[string]*window),
		max:     max,
		length:  length,
		now:     time.Now,
	}
}

// Allow has the same contract as the Redis-backed limiter. It never fails.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.length)) {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.lastSeen = now

	if w.count >= l.max {
		return false, w.start.Add(l.length).Sub(now), nil
	}
	w.count++
	return true, 0, nil
}

// Cleanup drops counters idle for longer than idleTTL or the window
// length, whichever is larger.
func (l *MemoryLimiter) Cleanup() {
	ttl := idleTTL
	if l.length > ttl {
		ttl = l.length
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, w := range l.windows {
		if w.lastSeen.Before(cutoff) {
			delete(l.windows, k)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (l *MemoryLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
