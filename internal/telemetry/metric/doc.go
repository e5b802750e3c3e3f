// Package metric provides Prometheus metrics for memkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Scrape-time collector for store statistics
//
// Metrics include:
//
//   - Command latency histograms
//   - Connection gauges and counters
//   - Error counters labeled by code
//   - Live and expired key statistics
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
