package reap

import "github.com/prometheus/client_golang/prometheus"

// Metrics adapts a collector's statistics to the prometheus.Collector interface. Scraping reads the same
// snapshot as Stats() and is not synchronized with the engine: the host must make sure that scrapes do not
// overlap graph mutation or collection passes.
type Metrics struct {
	collector *Collector

	trackedLive *prometheus.Desc
	poolRecords *prometheus.Desc
	roots       *prometheus.Desc
	passes      *prometheus.Desc
	swept       *prometheus.Desc
	freed       *prometheus.Desc
	compactions *prometheus.Desc
}

// NewMetrics initializes a metrics adapter for c. The metric names are prefixed with namespace, or with
// "reap" when it is empty.
func NewMetrics(c *Collector, namespace string) *Metrics {
	if namespace == "" {
		namespace = "reap"
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}

	return &Metrics{
		collector:   c,
		trackedLive: desc("tracked_live", "Number of tracked nodes still allocated."),
		poolRecords: desc("pool_records", "Number of bookkeeping records in the pool, dead ones included."),
		roots:       desc("roots", "Number of registered root entries."),
		passes:      desc("passes_total", "Number of collection passes run."),
		swept:       desc("swept_nodes_total", "Number of nodes that had their edges severed."),
		freed:       desc("freed_nodes_total", "Number of nodes released back to the arena."),
		compactions: desc("compactions_total", "Number of pool compactions."),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.trackedLive
	ch <- m.poolRecords
	ch <- m.roots
	ch <- m.passes
	ch <- m.swept
	ch <- m.freed
	ch <- m.compactions
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	s := m.collector.Stats()
	ch <- prometheus.MustNewConstMetric(m.trackedLive, prometheus.GaugeValue, float64(s.TrackedLive))
	ch <- prometheus.MustNewConstMetric(m.poolRecords, prometheus.GaugeValue, float64(s.PoolSize))
	ch <- prometheus.MustNewConstMetric(m.roots, prometheus.GaugeValue, float64(s.Roots))
	ch <- prometheus.MustNewConstMetric(m.passes, prometheus.CounterValue, float64(s.Passes))
	ch <- prometheus.MustNewConstMetric(m.swept, prometheus.CounterValue, float64(s.Swept))
	ch <- prometheus.MustNewConstMetric(m.freed, prometheus.CounterValue, float64(s.Freed))
	ch <- prometheus.MustNewConstMetric(m.compactions, prometheus.CounterValue, float64(s.Compactions))
}
