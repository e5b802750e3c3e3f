// Package cmap provides a concurrent-safe sharded map with string keys.
package cmap

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Note: This acquires locks shard by shard, so the view may not be consistent.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}

// Keys returns all keys.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Count())
	m.Range(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[V]) Pop(key string) (V, bool) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if ok {
		delete(shard.items, key)
	}
	return val, ok
}

// Mutate atomically reads and conditionally rewrites the value for a key.
//
// The callback receives the current value and whether the key exists, and
// returns the replacement value and whether it should be stored. When the
// callback reports false the map is left unchanged. Mutate returns whether
// a replacement was stored. The shard lock is held for the whole call, so
// no concurrent reader observes an intermediate state.
func (m *Map[V]) Mutate(key string, fn func(value V, exists bool) (V, bool)) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, exists := shard.items[key]
	replacement, store := fn(existing, exists)
	if !store {
		return false
	}
	shard.items[key] = replacement
	return true
}

// DeleteIf removes a key only when the predicate approves the current
// value. Returns whether a deletion happened. The shard lock is held
// across the check and the delete, so the predicate always sees the
// value actually being removed.
func (m *Map[V]) DeleteIf(key string, pred func(value V) bool) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if !ok || !pred(val) {
		return false
	}
	delete(shard.items, key)
	return true
}

// ShardCount returns the number of shards.
func (m *Map[V]) ShardCount() int {
	return len(m.shards)
}

// ShardStats returns statistics about each shard.
type ShardStats struct {
	Index int
	Count int
}

// Stats returns statistics about all shards.
func (m *Map[V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, shard := range m.shards {
		shard.mu.RLock()
		stats[i] = ShardStats{
			Index: i,
			Count: len(shard.items),
		}
		shard.mu.RUnlock()
	}
	return stats
}
