// Package memory provides in-memory storage for memkv.
//
// It implements the key-value store using concurrent-safe data
// structures with sharded locking for high performance.
//
// Features:
//
//   - Sharded Storage: Keys distributed across shards for parallelism
//   - Lazy Expiry: Expired entries read as absent and are reclaimed on
//     access, overwrite, or sweep
//   - Injectable Clock: Time source swappable for deterministic tests
//
// Thread Safety:
//
// All operations are thread-safe through fine-grained locking.
// Read operations use RLock, write operations use Lock.
package memory
