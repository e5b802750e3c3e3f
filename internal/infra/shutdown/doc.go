// Package shutdown provides graceful shutdown for memkv.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Named cleanup hook registration, run in reverse order
//   - Shutdown coordination
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown("listener", srv.Shutdown)
//	err := h.Wait() // Blocks until signal, then runs hooks
package shutdown
