package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus counters for the exercise bridge. A
// disabled instance is a no-op so call sites never branch.
type Metrics struct {
	config MetricsConfig

	runsStarted         *prometheus.CounterVec
	runsCompleted       *prometheus.CounterVec
	checksEvaluated     *prometheus.CounterVec
	timelinesSuppressed prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	registry := prometheus.NewRegistry()
	m := &Metrics{
		config:   cfg,
		registry: registry,
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_started_total",
			Help:      "Total test runs started, by exercise.",
		}, []string{"exercise"}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_completed_total",
			Help:      "Total test runs completed, by exercise and terminal status.",
		}, []string{"exercise", "status"}),
		checksEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "checks_evaluated_total",
			Help:      "Total checks evaluated, by result.",
		}, []string{"result"}),
		timelinesSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "timelines_suppressed_total",
			Help:      "Total animation timelines suppressed by the runaway-script policy.",
		}),
	}

	registry.MustRegister(m.runsStarted, m.runsCompleted, m.checksEvaluated, m.timelinesSuppressed)
	return m, nil
}

// RecordRunStarted counts a run start.
func (m *Metrics) RecordRunStarted(exercise string) {
	if m.registry == nil {
		return
	}
	m.runsStarted.WithLabelValues(exercise).Inc()
}

// RecordRunCompleted counts a run completion with its terminal status.
func (m *Metrics) RecordRunCompleted(exercise, status string) {
	if m.registry == nil {
		return
	}
	m.runsCompleted.WithLabelValues(exercise, status).Inc()
}

// RecordCheck counts one evaluated check.
func (m *Metrics) RecordCheck(pass bool) {
	if m.registry == nil {
		return
	}
	result := "fail"
	if pass {
		result = "pass"
	}
	m.checksEvaluated.WithLabelValues(result).Inc()
}

// RecordSuppressedTimeline counts one suppressed timeline.
func (m *Metrics) RecordSuppressedTimeline() {
	if m.registry == nil {
		return
	}
	m.timelinesSuppressed.Inc()
}

// Handler returns an HTTP handler serving the metrics, or nil when
// metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
