package seeder

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Rows reported as affected by the upsert of each entity
	seedRowsAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_rows_affected_total",
			Help: "Rows inserted or updated by the seed pipeline",
		},
		[]string{"entity"},
	)

	seedStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seed_stage_duration_seconds",
			Help:    "Duration of seed pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "outcome"},
	)

	seedStageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_stage_failures_total",
			Help: "Seed pipeline stages that ended in error",
		},
		[]string{"entity"},
	)
)

// MetricsNotifier records pipeline events as Prometheus metrics
type MetricsNotifier struct{}

func (MetricsNotifier) Notify(_ context.Context, e Event) error {
	seconds := (time.Duration(e.DurationMS) * time.Millisecond).Seconds()
	switch e.Kind {
	case EventStageCompleted:
		seedRowsAffected.WithLabelValues(e.Entity).Add(float64(e.Affected))
		seedStageDuration.WithLabelValues(e.Entity, "success").Observe(seconds)
	case EventStageFailed:
		seedStageFailures.WithLabelValues(e.Entity).Inc()
		seedStageDuration.WithLabelValues(e.Entity, "failure").Observe(seconds)
	}
	return nil
}
