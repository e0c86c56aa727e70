// Package metrics records validation activity as Prometheus metrics.
//
// Metrics:
//   - oasprofile_documents_total: documents processed, by result (ok, fail, fault)
//   - oasprofile_findings_total: findings reported, by code and severity
//   - oasprofile_refs_resolved_total: $ref objects replaced during parsing
//   - oasprofile_document_duration_seconds: time spent on one document, by phase
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "oasprofile"

// Document results.
const (
	ResultOK    = "ok"
	ResultFail  = "fail"
	ResultFault = "fault"
)

// Phases timed per document.
const (
	PhaseParse    = "parse"
	PhaseValidate = "validate"
)

// Collector owns the validation metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	documentsTotal   *prometheus.CounterVec
	findingsTotal    *prometheus.CounterVec
	refsTotal        prometheus.Counter
	documentDuration *prometheus.HistogramVec
}

// New creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Total number of documents processed",
			},
			[]string{"result"},
		),
		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "findings_total",
				Help:      "Total number of findings reported",
			},
			[]string{"code", "severity"},
		),
		refsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refs_resolved_total",
				Help:      "Total number of $ref objects resolved",
			},
		),
		documentDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_duration_seconds",
				Help:      "Time spent on one document in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"phase"},
		),
	}
	registry.MustRegister(
		c.documentsTotal,
		c.findingsTotal,
		c.refsTotal,
		c.documentDuration,
	)
	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordDocument counts one processed document.
func (c *Collector) RecordDocument(result string) {
	if c == nil {
		return
	}
	c.documentsTotal.WithLabelValues(result).Inc()
}

// RecordFinding counts one finding.
func (c *Collector) RecordFinding(code, severity string) {
	if c == nil {
		return
	}
	c.findingsTotal.WithLabelValues(code, severity).Inc()
}

// RecordRefs adds n resolved references.
func (c *Collector) RecordRefs(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.refsTotal.Add(float64(n))
}

// ObservePhase records how long a phase took.
func (c *Collector) ObservePhase(phase string, d time.Duration) {
	if c == nil {
		return
	}
	c.documentDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// WriteTextfile writes every metric in the registry to path in the text
// exposition format, for node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
