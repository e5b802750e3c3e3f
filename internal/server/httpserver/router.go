package httpserver

import (
	"net/http"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the ops router.
type RouterConfig struct {
	// Stats supplies the live key count for /healthz.
	Stats StoreStats

	// Metrics is the registry exposed on /metrics. Nil uses the global
	// registry.
	Metrics *metric.Registry

	// Logger for panic reporting.
	Logger logger.Logger
}

// NewRouter creates the ops endpoint router.
func NewRouter(cfg *RouterConfig) http.Handler {
	if cfg == nil {
		cfg = &RouterConfig{}
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = metric.Global()
	}

	common := []Middleware{RequestID(), Recover(cfg.Logger)}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", Chain(newHealthHandler(cfg.Stats), common...))
	mux.Handle("GET /metrics", Chain(metrics.Handler(), common...))

	return mux
}
