// Package metrics counts conversion outcomes in a private Prometheus
// registry. A CLI run has no scrape endpoint, so the registry is exported in
// the node_exporter textfile format at exit (--metrics-file).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pnator-core/pna"
)

const namespace = "pnator"

// Metrics holds the counters of one run.
type Metrics struct {
	reg *prometheus.Registry

	// Files counts inputs by status (ok, error).
	Files *prometheus.CounterVec
	// Residues counts converted residues by status (valid, invalid).
	Residues *prometheus.CounterVec
	// BackboneFailures counts residues whose O1' could not be synthesized.
	BackboneFailures prometheus.Counter
	// Synthesized counts synthesized atoms by name (O7', O1').
	Synthesized *prometheus.CounterVec
	// Duration observes per-file read+convert+write time.
	Duration prometheus.Histogram
}

// New registers a fresh set of metrics in its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Files: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Input structures processed, by status.",
		}, []string{"status"}),
		Residues: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "residues_total",
			Help:      "Nucleotide residues converted, by validation status.",
		}, []string{"status"}),
		BackboneFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backbone_failures_total",
			Help:      "Residues missing OP1, OP2 or P.",
		}),
		Synthesized: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesized_atoms_total",
			Help:      "Backbone atoms placed by centroid projection, by atom name.",
		}, []string{"atom"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time to read, convert and write one structure.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// Registry exposes the underlying registry (for tests and gatherers).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveFile records one input. A nil m is a no-op.
func (m *Metrics) ObserveFile(sum pna.Summary, fileErr error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Duration.Observe(elapsed.Seconds())
	if fileErr != nil {
		m.Files.WithLabelValues("error").Inc()
		return
	}
	m.Files.WithLabelValues("ok").Inc()
	for _, r := range sum.Reports {
		if r.Valid() {
			m.Residues.WithLabelValues("valid").Inc()
		} else {
			m.Residues.WithLabelValues("invalid").Inc()
		}
		if r.BackboneFailure {
			m.BackboneFailures.Inc()
		}
		for _, name := range r.Synthesized {
			m.Synthesized.WithLabelValues(name).Inc()
		}
	}
}

// WriteFile writes the registry to path in the textfile collector format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
