package metrics

import (
	"strconv"
	"time"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
)

// ObserveBackend records one backend round trip. status 0 means no response.
func ObserveBackend(method, route string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	BackendRequestsTotal.WithLabelValues(method, route, code).Inc()
	BackendRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveNavigation records one guard decision.
func ObserveNavigation(d access.Decision) {
	NavigationDecisionsTotal.WithLabelValues(string(d.Outcome), string(d.View)).Inc()
}

// AuditObserver feeds the audit dispatcher's queue gauges.
type AuditObserver struct{}

func (AuditObserver) QueueDepth(worker, depth int) {
	AuditQueueDepth.WithLabelValues(strconv.Itoa(worker)).Set(float64(depth))
}

func (AuditObserver) Dropped() { AuditDroppedTotal.Inc() }
