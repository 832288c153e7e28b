// Package redis holds the Redis-backed shared state of the API: the
// fixed-window rate limiter and its readiness probe.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 5 * time.Second
	// opTimeout bounds one limiter round trip.
	opTimeout = time.Second
)

// Config is the Redis connection used for rate-limit counters.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client for cfg and pings it once. The client is closed
// again if the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
