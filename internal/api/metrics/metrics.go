// Package metrics defines and registers the console's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics register with the default Prometheus registry through promauto
// when the package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "opd"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts requests sent to the backend API.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - status: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the backend API.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures round-trip latency to the backend.
// Label:
//   - method: HTTP method
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// TransportFailuresTotal counts requests that never got a response.
var TransportFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_transport_failures_total",
		Help:      "Total number of backend requests that failed before any response.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionExpiredTotal counts sessions discarded because the backend answered 401.
var SessionExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expired_total",
		Help:      "Total number of sessions cleared after a 401 from the backend.",
	},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - state: AccessState name (e.g. "authorized")
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by resulting access state.",
	},
	[]string{"state"},
)

// NavigationsTotal counts forced navigations issued outside a handler.
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of forced navigations, by target path.",
	},
	[]string{"path"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "admin" or "doctor"
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)
