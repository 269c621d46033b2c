package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments the server updates.
type Metrics struct {
	eventsTotal       *prometheus.CounterVec
	eventErrors       *prometheus.CounterVec
	mutationsTotal    prometheus.Counter
	reconcileDuration prometheus.Histogram
	activeSessions    prometheus.Gauge
}

// NewMetrics registers the server's instruments with the given
// registry. Pass prometheus.DefaultRegisterer for the usual global
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fax",
			Name:      "events_total",
			Help:      "Total host events dispatched, by event type.",
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fax",
			Name:      "event_errors_total",
			Help:      "Events whose dispatch or reconciliation failed, by event type.",
		}, []string{"type"}),

		mutationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fax",
			Name:      "mutations_total",
			Help:      "Total document mutations streamed to clients.",
		}),

		reconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fax",
			Name:      "reconcile_duration_seconds",
			Help:      "Time spent dispatching one event and flushing its mutations.",
			Buckets:   prometheus.DefBuckets,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fax",
			Name:      "active_sessions",
			Help:      "Currently connected websocket sessions.",
		}),
	}
}
