// Package metrics defines and registers the custom Prometheus metrics of the
// gateway. HTTP request metrics come from echoprometheus; everything here
// covers what happens behind the handlers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "condo_gateway"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts round trips to the REST backend.
// Labels:
//   - method: HTTP method
//   - route: request path with numeric ids collapsed (e.g. "/fees/:id/status")
//   - status: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the REST backend.",
	},
	[]string{"method", "route", "status"},
)

// BackendRequestDuration measures backend round-trip latency.
// Label:
//   - route: as in BackendRequestsTotal
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of REST backend round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// NavigationDecisionsTotal counts route guard outcomes.
// Labels:
//   - outcome: "render", "redirect" or "login"
//   - view: the view finally shown
var NavigationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigation_decisions_total",
		Help:      "Total number of route guard decisions, by outcome and resulting view.",
	},
	[]string{"outcome", "view"},
)

// CapabilityDenialsTotal counts API requests refused for a missing capability.
var CapabilityDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "capability_denials_total",
		Help:      "Total number of API requests rejected with 403, by required capability.",
	},
	[]string{"capability"},
)

// IdempotentReplaysTotal counts create requests rejected as replays.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests rejected because their Idempotency-Key was already used.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks pending entries per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts entries dropped because a worker queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped on a full queue.",
	},
)
