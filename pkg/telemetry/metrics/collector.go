// Package metrics exposes Prometheus metrics for cleanup runs. Metrics are
// only served in scheduled (daemon) mode; a one-shot run has nowhere to
// scrape from.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"searchops/esprune/pkg/prune"
)

// Collector records per-run metrics. It implements prune.Observer.
type Collector struct {
	registry *prometheus.Registry

	runsTotal           *prometheus.CounterVec
	indicesDeletedTotal *prometheus.CounterVec
	indicesSkippedTotal *prometheus.CounterVec
	nodeFailuresTotal   *prometheus.CounterVec
	runDurationSeconds  prometheus.Histogram
}

// NewCollector creates a collector registered against the given registry.
// If registry is nil a new one is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprune",
			Name:      "runs_total",
			Help:      "Cleanup runs by outcome.",
		}, []string{"status"}),
		indicesDeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprune",
			Name:      "indices_deleted_total",
			Help:      "Indices deleted, by node.",
		}, []string{"node"}),
		indicesSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprune",
			Name:      "indices_skipped_total",
			Help:      "Indices skipped for unparseable date suffixes, by node.",
		}, []string{"node"}),
		nodeFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esprune",
			Name:      "node_failures_total",
			Help:      "Node-level connection or transport failures, by node.",
		}, []string{"node"}),
		runDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "esprune",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of cleanup runs.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}),
	}

	registry.MustRegister(
		c.runsTotal,
		c.indicesDeletedTotal,
		c.indicesSkippedTotal,
		c.nodeFailuresTotal,
		c.runDurationSeconds,
	)

	return c
}

// Registry returns the Prometheus registry the collector is registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRun records the metrics for one completed run.
func (c *Collector) ObserveRun(result *prune.RunResult) {
	status := "success"
	if result.Failed() {
		status = "partial_failure"
	}
	c.runsTotal.WithLabelValues(status).Inc()
	c.runDurationSeconds.Observe(result.Duration.Seconds())

	for i := range result.Outcomes {
		outcome := &result.Outcomes[i]
		if outcome.Failed() {
			c.nodeFailuresTotal.WithLabelValues(outcome.Node).Inc()
			continue
		}
		c.indicesDeletedTotal.WithLabelValues(outcome.Node).Add(float64(len(outcome.Report.Deleted)))
		c.indicesSkippedTotal.WithLabelValues(outcome.Node).Add(float64(len(outcome.Report.Skipped)))
	}
}
