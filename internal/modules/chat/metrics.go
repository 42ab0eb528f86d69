package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAsked          = "asked"
	outcomeResults        = "results"
	outcomeNoResults      = "no_results"
	outcomeQuota          = "quota_exceeded"
	outcomeModelTransport = "model_transport"
	outcomeModelMalformed = "model_malformed"
	outcomeError          = "error"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartdrive",
		Subsystem: "chat",
		Name:      "turns_total",
		Help:      "Conversation turns by outcome",
	}, []string{"outcome"})

	turnLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "smartdrive",
		Subsystem: "chat",
		Name:      "turn_duration_seconds",
		Help:      "End-to-end duration of a conversation turn",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartdrive",
		Subsystem: "chat",
		Name:      "sessions",
		Help:      "Sessions held in memory",
	})
)
