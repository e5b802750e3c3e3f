// Package logger provides structured logging for memkv.
//
// This package wraps the standard library log/slog:
//
//   - logger.go: Handler configuration, level control, global default
//   - context.go: Context-aware logging with connection IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation for per-connection attribution
package logger
