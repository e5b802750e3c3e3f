// Package metric provides Prometheus metrics for memkv.
//
// It exposes metrics in Prometheus format for monitoring connection
// counts, command rates, latencies, and store health.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric exported by the server.
const namespace = "memkv"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsOpen     prometheus.Gauge
	ConnectionsAccepted prometheus.Counter
	ConnectionsRejected *prometheus.CounterVec

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandErrors   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Store metrics
	KeysExpired prometheus.Counter
}

// commandBuckets covers in-memory command latencies. The default
// buckets start at 5ms, far above a map lookup.
var commandBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001,
	0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewRegistry creates a metrics registry with all application metrics
// plus the standard Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		ConnectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_open",
			Help:      "Number of currently open client connections",
		}),
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_accepted_total",
			Help:      "Total number of accepted client connections",
		}),
		ConnectionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_rejected_total",
			Help:      "Total number of rejected client connections",
		}, []string{"reason"}),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of commands processed",
		}, []string{"command"}),
		CommandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Total number of commands answered with an error",
		}, []string{"code"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command processing duration in seconds",
			Buckets:   commandBuckets,
		}, []string{"command"}),

		KeysExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "keys_expired_total",
			Help:      "Total number of keys removed after TTL expiry",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ConnectionsOpen,
		r.ConnectionsAccepted,
		r.ConnectionsRejected,
		r.CommandsTotal,
		r.CommandErrors,
		r.CommandDuration,
		r.KeysExpired,
	)

	return r
}

// MustRegister adds extra collectors, such as the store collector, to
// the underlying registry.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsAccepted.Inc()
	r.ConnectionsOpen.Inc()
}

// ConnClosed records a closed connection.
func (r *Registry) ConnClosed() {
	r.ConnectionsOpen.Dec()
}

// RecordRejection records a connection turned away before serving.
func (r *Registry) RecordRejection(reason string) {
	r.ConnectionsRejected.WithLabelValues(reason).Inc()
}

// RecordCommand records one processed command.
func (r *Registry) RecordCommand(command string) {
	r.CommandsTotal.WithLabelValues(command).Inc()
}

// RecordCommandError records a command answered with an error reply.
func (r *Registry) RecordCommandError(code string) {
	r.CommandErrors.WithLabelValues(code).Inc()
}

// ObserveCommandDuration records the processing time of a command.
func (r *Registry) ObserveCommandDuration(command string, seconds float64) {
	r.CommandDuration.WithLabelValues(command).Observe(seconds)
}

// AddKeysExpired records keys reclaimed by expiry, lazily or by sweep.
func (r *Registry) AddKeysExpired(n int) {
	r.KeysExpired.Add(float64(n))
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide metrics registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
