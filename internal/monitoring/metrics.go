package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for adjustment metrics.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeRetired  = "retired"
	OutcomeError    = "error"
)

type BusinessMetrics struct {
	SchedulesGenerated *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	Adjustments        *prometheus.CounterVec
}

var Business = BusinessMetrics{
	SchedulesGenerated: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortizer_schedules_generated_total",
			Help: "Total number of amortization schedules generated.",
		},
		[]string{"periodicity"},
	),
	GenerationDuration: promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "amortizer_schedule_generation_seconds",
			Help:    "Histogram of schedule generation latencies.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	),
	Adjustments: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortizer_adjustments_total",
			Help: "Total number of balance adjustments by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	),
}

func RecordScheduleGenerated(periodicity string, duration time.Duration) {
	Business.SchedulesGenerated.WithLabelValues(periodicity).Inc()
	Business.GenerationDuration.Observe(duration.Seconds())
}

func RecordAdjustment(operation, outcome string) {
	Business.Adjustments.WithLabelValues(operation, outcome).Inc()
}
