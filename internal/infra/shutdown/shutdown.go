// Package shutdown provides graceful shutdown handling.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
)

// Hook is a named shutdown step.
type Hook struct {
	Name string
	Run  func(context.Context) error
}

// Handler handles graceful shutdown.
//
// Hooks run in reverse registration order, mirroring startup order, and
// share one deadline: a hook that overruns eats into the time left for
// the rest.
type Handler struct {
	timeout time.Duration
	log     logger.Logger

	mu    sync.Mutex
	hooks []Hook
	done  chan struct{}
}

// NewHandler creates a shutdown handler with the given total timeout.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		log:     logger.Default(),
		hooks:   make([]Hook, 0),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a named shutdown hook.
func (h *Handler) OnShutdown(name string, run func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, Hook{Name: name, Run: run})
}

// Wait blocks until SIGINT or SIGTERM, then runs the hooks. It returns
// the last hook error, if any.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	signal.Stop(sigCh)

	h.log.Info("shutdown signal received", "signal", sig.String())
	return h.run()
}

func (h *Handler) run() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		h.log.Debug("running shutdown hook", "hook", hooks[i].Name)
		if err := hooks[i].Run(ctx); err != nil {
			h.log.Error("shutdown hook failed", "hook", hooks[i].Name, "error", err)
			lastErr = err
		}
	}

	close(h.done)
	return lastErr
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
