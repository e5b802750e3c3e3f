package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

type fakeStats struct {
	n int
}

func (s *fakeStats) Len() int { return s.n }

func serveOps(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	router := NewRouter(&RouterConfig{
		Stats:   &fakeStats{n: 42},
		Metrics: metric.NewRegistry(),
	})

	rec := serveOps(t, router, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body struct {
		Status   string `json:"status"`
		KeysLive int    `json:"keys_live"`
		Version  string `json:"version"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.KeysLive != 42 {
		t.Errorf("keys_live = %d, want 42", body.KeysLive)
	}
	if body.Version == "" {
		t.Error("version should not be empty")
	}
}

func TestRouter_Metrics(t *testing.T) {
	metrics := metric.NewRegistry()
	metrics.RecordCommand("PING")

	router := NewRouter(&RouterConfig{Metrics: metrics})

	rec := serveOps(t, router, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "memkv_commands_total") {
		t.Error("metrics output should contain memkv_commands_total")
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := NewRouter(&RouterConfig{Metrics: metric.NewRegistry()})

	rec := serveOps(t, router, http.MethodGet, "/healthz")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	// An inbound ID is honored and echoed.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-fixed")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-fixed" {
		t.Errorf("X-Request-ID = %q, want req-fixed", got)
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	router := NewRouter(&RouterConfig{Metrics: metric.NewRegistry()})

	rec := serveOps(t, router, http.MethodGet, "/sessions")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := Chain(panicking, Recover(nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
