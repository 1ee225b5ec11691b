// Package metrics exposes ingestion counters in the Prometheus format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Import outcomes used as the outcome label of rankflow_imports_total.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeParseError  = "parse_error"
	OutcomeEmpty       = "empty"
	OutcomePersistence = "persistence_error"
)

// Collector records ingestion runs on its own registry. A nil *Collector
// is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry
	imports  *prometheus.CounterVec
	rows     prometheus.Counter
	domains  prometheus.Gauge
	duration prometheus.Histogram
}

// New creates a collector with all ingestion metrics registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rankflow_imports_total",
			Help: "Total import attempts by outcome",
		}, []string{"outcome"}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankflow_rows_ingested_total",
			Help: "Total keyword rows persisted",
		}),
		domains: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rankflow_domains_discovered",
			Help: "Domains discovered in the most recent import",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankflow_ingest_duration_seconds",
			Help:    "Duration of ingestion runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
	c.registry.MustRegister(c.imports, c.rows, c.domains, c.duration)
	return c
}

// ObserveImport records one ingestion attempt.
func (c *Collector) ObserveImport(outcome string, rows, domains int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.imports.WithLabelValues(outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
	if outcome != OutcomeSuccess {
		return
	}
	c.rows.Add(float64(rows))
	c.domains.Set(float64(domains))
}

// Registry returns the registry holding the ingestion metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current metrics for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
