package memres

import "github.com/prometheus/client_golang/prometheus"

// MetricsSource is anything that can report arena statistics. Both *Arena
// and *SafeArena qualify; only the latter may be scraped while in use.
type MetricsSource interface {
	Metrics() ArenaMetrics
}

// ArenaCollector exports an arena snapshot as Prometheus gauges.
type ArenaCollector struct {
	src MetricsSource

	inUse       *prometheus.Desc
	capacity    *prometheus.Desc
	wasted      *prometheus.Desc
	peak        *prometheus.Desc
	blocks      *prometheus.Desc
	utilization *prometheus.Desc
}

// NewArenaCollector returns a collector reporting src under the arena label.
func NewArenaCollector(name string, src MetricsSource) *ArenaCollector {
	labels := prometheus.Labels{"arena": name}
	return &ArenaCollector{
		src:         src,
		inUse:       prometheus.NewDesc("memres_arena_bytes_in_use", "Bytes currently bumped out of arena blocks.", nil, labels),
		capacity:    prometheus.NewDesc("memres_arena_capacity_bytes", "Total bytes held in arena blocks.", nil, labels),
		wasted:      prometheus.NewDesc("memres_arena_wasted_bytes", "Destroyed bytes that cannot be reused until reset.", nil, labels),
		peak:        prometheus.NewDesc("memres_arena_peak_bytes", "High-water mark of bytes in use.", nil, labels),
		blocks:      prometheus.NewDesc("memres_arena_blocks", "Number of arena blocks.", nil, labels),
		utilization: prometheus.NewDesc("memres_arena_utilization_ratio", "Bytes in use divided by capacity.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *ArenaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.capacity
	ch <- c.wasted
	ch <- c.peak
	ch <- c.blocks
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *ArenaCollector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.wasted, prometheus.GaugeValue, float64(m.Wasted))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(m.Peak))
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(m.NumBlocks))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization)
}

var _ prometheus.Collector = (*ArenaCollector)(nil)
