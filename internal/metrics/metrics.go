// Package metrics exposes Prometheus instrumentation for model builds.
package metrics

import (
	"context"

	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the build collectors.
type Metrics struct {
	Builds       *prometheus.CounterVec
	Duration     prometheus.Histogram
	Compartments prometheus.Gauge
	Transitions  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epigraph_builds_total",
				Help: "Total number of model builds by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "epigraph_build_duration_seconds",
			Help:    "Duration of model builds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Compartments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "epigraph_compartments",
			Help: "Number of compartments in the last built model",
		}),
		Transitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "epigraph_transitions",
			Help: "Number of transitions in the last built model",
		}),
	}
	reg.MustRegister(m.Builds, m.Duration, m.Compartments, m.Transitions)
	return m
}

// Hooks returns build hooks that record into m.
func (m *Metrics) Hooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnTransitionsCreated: func(_ context.Context, e *domain.BuildEvent) {
			outcome := "built"
			if e.Cached {
				outcome = "cached"
			}
			m.Builds.WithLabelValues(outcome).Inc()
			m.Duration.Observe(e.Elapsed.Seconds())
			m.Compartments.Set(float64(e.Compartments))
			m.Transitions.Set(float64(e.Transitions))
		},
		OnBuildFailed: func(_ context.Context, e *domain.BuildEvent) {
			m.Builds.WithLabelValues("failed").Inc()
		},
	}
}
