// Package httpserver provides the operational HTTP endpoint for memkv.
//
// It serves on a listener separate from the data plane, so health
// probes and metric scrapes never compete with client commands:
//
//	GET /healthz   JSON health status, uptime, live key count
//	GET /metrics   Prometheus metrics
//
// The data protocol itself is served by respserver; this surface is
// read-only and unauthenticated.
package httpserver
