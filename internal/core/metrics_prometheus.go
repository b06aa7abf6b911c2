package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"energyport/pkg/domain"
)

// PrometheusRecorder exports build and service metrics through a Prometheus
// registry. It implements MetricsRecorder and EntityCounter.
type PrometheusRecorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	results  *prometheus.CounterVec
	entities *prometheus.CounterVec
	issues   *prometheus.CounterVec
}

// NewPrometheusRecorder registers the energyport collectors on a fresh
// registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "energyport",
			Name:      "build_phase_seconds",
			Help:      "Duration of build phases and service operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energyport",
			Name:      "operations_total",
			Help:      "Completed operations by outcome.",
		}, []string{"operation", "status"}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energyport",
			Name:      "entities_built_total",
			Help:      "Engine objects created by category.",
		}, []string{"category"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "energyport",
			Name:      "build_issues_total",
			Help:      "Issues raised while building, by severity.",
		}, []string{"severity"}),
	}
	r.registry.MustRegister(r.duration, r.results, r.entities, r.issues)
	return r
}

// Registry returns the registry holding the collectors.
func (r *PrometheusRecorder) Registry() *prometheus.Registry { return r.registry }

// Observe implements MetricsRecorder.
func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.duration.WithLabelValues(operation).Observe(duration.Seconds())
	r.results.WithLabelValues(operation, status).Inc()
}

// EntityBuilt implements EntityCounter.
func (r *PrometheusRecorder) EntityBuilt(category domain.EntityType) {
	r.entities.WithLabelValues(string(category)).Inc()
}

// IssueRaised implements EntityCounter.
func (r *PrometheusRecorder) IssueRaised(severity domain.Severity) {
	r.issues.WithLabelValues(string(severity)).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// for collection by the node exporter textfile collector.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
