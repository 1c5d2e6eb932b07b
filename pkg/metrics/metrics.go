// pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItineraryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelgenie_itinerary_requests_total",
			Help: "Itinerary generations by outcome",
		},
		[]string{"outcome"},
	)

	RecoveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelgenie_recovery_total",
			Help: "Response recoveries by winning strategy (or \"failed\")",
		},
		[]string{"strategy"},
	)

	DroppedDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "travelgenie_recovery_dropped_days_total",
			Help: "Objects dropped by line stitching because they were not day records",
		},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelgenie_llm_request_duration_seconds",
			Help:    "Duration of generative API calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider", "model"},
	)
)

const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUpstream     = "upstream_error"
	OutcomeUnparseable  = "unparseable"
	StrategyFailed      = "failed"
)
