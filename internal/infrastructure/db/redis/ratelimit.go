package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowLimiter is a fixed-window request counter shared by every server
// instance pointing at the same Redis.
// Key format: ratelimit:<name>:<client key>
type WindowLimiter struct {
	client *redis.Client
	name   string
	max    int64
	window time.Duration
}

// NewWindowLimiter allows max hits per key in each window.
func NewWindowLimiter(client *redis.Client, name string, max int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{client: client, name: name, max: int64(max), window: window}
}

// Allow counts one hit for key. When the limit is exceeded it returns false
// and the time left until the window resets.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if n <= l.max {
		return true, 0, nil
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// Counter lost its expiry; restart the window.
		_ = l.client.Expire(ctx, k, l.window).Err()
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *WindowLimiter) key(client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.name, client)
}

// Pinger reports Redis reachability for readiness probes.
type Pinger struct {
	client *redis.Client
}

func NewPinger(client *redis.Client) *Pinger {
	return &Pinger{client: client}
}

func (p *Pinger) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.client.Ping(ctx).Err()
}
