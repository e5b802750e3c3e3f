// Package respserver provides the TCP server speaking the memkv wire
// protocol.
//
// It owns the accept loop, one goroutine per connection, and the command
// dispatcher that maps decoded requests onto the store. The store is the
// only shared mutable state; its locks are held per operation and never
// across network I/O, so a slow client cannot stall others.
//
// Supported commands:
//   - PING, ECHO, QUIT
//   - GET, SET (PX/EX options), DEL, EXISTS
//   - EXPIRE, PEXPIRE, TTL, PTTL
//   - KEYS, DBSIZE, FLUSHALL
//
// Connection admission is bounded by a concurrent-connection cap and a
// per-IP token-bucket rate limit. A background janitor sweeps expired
// entries so memory is reclaimed while all connections are idle.
package respserver
