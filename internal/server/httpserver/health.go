package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/memkv-go/internal/infra/buildinfo"
)

// StoreStats is the view of the store the health endpoint reports.
type StoreStats interface {
	// Len returns the number of live keys.
	Len() int
}

// healthResponse is the /healthz payload.
type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	KeysLive      int    `json:"keys_live"`
	Time          string `json:"time"`
}

// healthHandler answers GET /healthz.
type healthHandler struct {
	stats   StoreStats
	started time.Time
}

func newHealthHandler(stats StoreStats) *healthHandler {
	return &healthHandler{
		stats:   stats,
		started: time.Now(),
	}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "healthy",
		Version:       buildinfo.Version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Time:          time.Now().UTC().Format(time.RFC3339),
	}
	if h.stats != nil {
		resp.KeysLive = h.stats.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
