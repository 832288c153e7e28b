package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/learnhub/lesson-api/internal/api/metrics"
	"github.com/learnhub/lesson-api/internal/core/domain"
)

// Limiter counts one hit for key and reports whether it is allowed. When it
// is not, retryAfter is the time until the key may try again.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// storeWarnInterval caps "limiter unavailable" warnings to one per interval.
const storeWarnInterval = time.Minute

// RateLimit rejects clients that exceed l, keyed by client IP. A failing
// limiter store lets the request through.
func RateLimit(name string, l Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	storeWarn := &rate.Sometimes{First: 1, Interval: storeWarnInterval}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retry, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				storeWarn.Do(func() {
					log.Warn().Err(err).Str("limiter", name).Msg("rate limiter unavailable, allowing requests")
				})
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(name).Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
				return domain.TooManyRequests("too many requests, please try again later")
			}
			return next(c)
		}
	}
}
