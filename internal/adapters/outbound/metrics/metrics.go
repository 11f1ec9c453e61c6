// Package metrics exposes validation counters as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ff6editor/pluginvet/internal/domain"
)

// Outcome labels for pluginvet_checks_total.
const (
	OutcomePass = "pass"
	OutcomeWarn = "warn"
	OutcomeFail = "fail"
)

// Metrics holds the validator's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ChecksTotal *prometheus.CounterVec
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram
}

// New creates and registers the collectors on registry. A nil registry gets
// a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		ChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pluginvet_checks_total",
				Help: "Check results by pass and outcome",
			},
			[]string{"pass", "outcome"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pluginvet_runs_total",
				Help: "Validation runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pluginvet_run_duration_seconds",
				Help:    "Validation run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}
	registry.MustRegister(m.ChecksTotal, m.RunsTotal, m.RunDuration)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRun implements domain.MetricsRecorder.
func (m *Metrics) ObserveRun(run *domain.ValidationRun) {
	for _, r := range run.Report.Results {
		m.ChecksTotal.WithLabelValues(string(r.Pass), Outcome(r)).Inc()
	}
	result := "passed"
	if !run.Passed {
		result = "failed"
	}
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(run.Duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// Outcome maps a result to its outcome label.
func Outcome(r domain.CheckResult) string {
	switch {
	case r.Passed:
		return OutcomePass
	case r.IsError():
		return OutcomeFail
	default:
		return OutcomeWarn
	}
}
