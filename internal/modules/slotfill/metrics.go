// README: Prometheus metrics for model calls.
package slotfill

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// modelAttempts counts model calls by provider and result (ok, malformed, transport_error).
	modelAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartdrive",
		Subsystem: "slotfill",
		Name:      "model_attempts_total",
		Help:      "Model calls by provider and result",
	}, []string{"provider", "result"})

	modelLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartdrive",
		Subsystem: "slotfill",
		Name:      "model_latency_seconds",
		Help:      "Latency of a single model call",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"provider"})
)
