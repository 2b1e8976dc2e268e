// Package metrics defines and registers the custom Prometheus metrics of the
// back-office auth API. It is the single source of truth for metric names,
// labels and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account creations.
// Label:
//   - result: "success", "conflict", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts access token renewals.
// Label:
//   - result: "success", "invalid_refresh_token", "error"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "refreshes_total",
		Help:      "Total number of refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Guards ────────────────────────────────────────────────────────────────────

// AuthGuardRejectionsTotal counts requests rejected by the access guard or role gate.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token", "forbidden"
var AuthGuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "guard_rejections_total",
		Help:      "Total number of protected requests rejected, by reason.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts requests refused by the rate limiter.
// Label:
//   - scope: the limited route group (e.g. "login", "refresh")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "rate_limited_total",
		Help:      "Total number of requests refused by the rate limiter.",
	},
	[]string{"scope"},
)
