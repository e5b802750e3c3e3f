// Package cmap provides a concurrent map implementation for memkv.
//
// This package implements a sharded concurrent map optimized for
// high-throughput key-value storage with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Atomic Rewrites: Mutate for read-modify-write under one lock
//   - Conditional Removal: DeleteIf for check-then-delete under one lock
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.NewWithShards[*Entry](32)
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete, Mutate) use Lock.
package cmap
