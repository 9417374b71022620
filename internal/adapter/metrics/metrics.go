package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RosterMetrics holds all Prometheus metrics for the roster service.
type RosterMetrics struct {
	ReconciliationsTotal *prometheus.CounterVec
	MutationsTotal       *prometheus.CounterVec
	AdminCacheHits       prometheus.Counter
	AdminCacheMisses     prometheus.Counter
}

// NewRosterMetrics initializes and registers the Prometheus metrics.
func NewRosterMetrics() *RosterMetrics {
	return &RosterMetrics{
		ReconciliationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "role_roster",
			Subsystem: "reconcile",
			Name:      "runs_total",
			Help:      "Total number of snapshot reconciliations by outcome.",
		}, []string{"outcome"}), // outcome: applied, noop, error
		MutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "role_roster",
			Subsystem: "reconcile",
			Name:      "mutations_total",
			Help:      "Total number of assignment mutations by operation.",
		}, []string{"op"}), // op: create, delete
		AdminCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "role_roster",
			Subsystem: "auth",
			Name:      "admin_cache_hits_total",
			Help:      "Total number of admin-gate cache hits.",
		}),
		AdminCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "role_roster",
			Subsystem: "auth",
			Name:      "admin_cache_misses_total",
			Help:      "Total number of admin-gate cache misses.",
		}),
	}
}
