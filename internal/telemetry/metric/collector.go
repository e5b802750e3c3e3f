// Package metric provides Prometheus metrics for memkv.
package metric

import "github.com/prometheus/client_golang/prometheus"

// StoreStats is the view of the store the collector scrapes.
type StoreStats interface {
	// Len returns the number of live keys.
	Len() int
}

// StoreCollector exports store gauges computed at scrape time.
type StoreCollector struct {
	stats    StoreStats
	keysLive *prometheus.Desc
}

// NewStoreCollector creates a collector reading from stats.
func NewStoreCollector(stats StoreStats) *StoreCollector {
	return &StoreCollector{
		stats: stats,
		keysLive: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "keys_live"),
			"Number of live keys in the store",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keysLive
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		c.keysLive, prometheus.GaugeValue, float64(c.stats.Len()))
}
