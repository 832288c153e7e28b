// Package metrics defines the custom Prometheus metrics of the lesson API.
// It is the single source of truth for metric names, labels and help strings.
//
// All metrics register with the default registry on import via promauto, so
// they appear on /metrics next to the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lessons"

// ── Prompt metrics ────────────────────────────────────────────────────────────

// PromptsTotal counts prompt creation attempts by outcome.
// Label:
//   - outcome: "created", "rejected", "upstream_error" or "persistence_error"
var PromptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prompts_total",
		Help:      "Total number of prompt creation attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GenerationDuration measures how long the language model takes to answer.
// Label:
//   - result: "ok" or "error"
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of lesson generation calls.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"result"},
)

// ── Error and access metrics ──────────────────────────────────────────────────

// ErrorsTotal counts error responses written by the error translator.
// Label:
//   - kind: the error kind (e.g. "validation", "not_found", "upstream")
var ErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Total number of error responses, by error kind.",
	},
	[]string{"kind"},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - limiter: "api" or "login"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"limiter"},
)

// UsersRegisteredTotal counts successful self-registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of self-registered users.",
	},
)
