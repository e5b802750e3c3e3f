// Package command provides CLI command definitions for memkv-cli.
//
// Commands are organized by file:
//
//   - root.go: Application setup, global flags, shared helpers
//   - key.go: get, set, del, exists
//   - expiry.go: expire, pexpire, ttl, pttl
//   - server.go: ping, echo, keys, dbsize, flushall
//   - repl.go: Interactive mode
//
// Each single-shot command dials the server named by --server, sends
// one wire command, prints the rendered reply, and disconnects.
package command
