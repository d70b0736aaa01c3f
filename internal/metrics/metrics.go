// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "http_requests_total",
		Help:      "Count of processed HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "backoffice",
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of HTTP handlers",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "rate_limit_hits_total",
		Help:      "Number of rate-limited responses",
	}, []string{"route"})

	// VerificationChanges counts user verification state transitions by target state.
	VerificationChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "user_verification_changes_total",
		Help:      "User email verification transitions made from the edit form",
	}, []string{"to"})

	RecordedExceptions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "recorded_exceptions_total",
		Help:      "Unhandled request errors stored for the exceptions browser",
	})
)
