package memory

import (
	"time"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/pkg/cmap"
)

// Clock supplies the current time for expiry decisions. The server
// installs time.Now; tests install a fake to step across TTL
// boundaries deterministically.
type Clock func() time.Time

// Store provides in-memory key-value storage with per-key TTLs.
//
// Expired entries become unobservable the instant their TTL lapses,
// but the memory is reclaimed lazily: by the next read of the key,
// an overwrite, or a SweepExpired pass.
type Store struct {
	entries *cmap.Map[*domain.Entry]

	clock      Clock
	shardCount int
}

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source used for expiry decisions.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithShardCount sets the shard count of the underlying map.
// The count must be a power of 2.
func WithShardCount(n int) Option {
	return func(s *Store) {
		s.shardCount = n
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:      time.Now,
		shardCount: cmap.DefaultShardCount,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.entries = cmap.NewWithShards[*domain.Entry](s.shardCount)

	return s
}

// Set stores value under key, replacing any previous entry and its
// TTL. A ttl of zero or less keeps the key until it is deleted or
// overwritten.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.entries.Set(key, domain.NewEntry(value, ttl, s.clock()))
}

// Get returns a copy of the value stored under key. Expired entries
// read as absent.
func (s *Store) Get(key string) ([]byte, bool) {
	entry, ok := s.entries.Get(key)
	if !ok || entry.Expired(s.clock()) {
		return nil, false
	}
	return entry.ValueCopy(), true
}

// Exists reports whether key holds a live entry.
func (s *Store) Exists(key string) bool {
	entry, ok := s.entries.Get(key)
	return ok && !entry.Expired(s.clock())
}

// Delete removes key. Returns whether a live entry was removed;
// removing an entry that had already expired counts as a miss.
func (s *Store) Delete(key string) bool {
	entry, ok := s.entries.Pop(key)
	return ok && !entry.Expired(s.clock())
}

// Expire resets the TTL of a live entry without touching its value.
// The new TTL counts from now. Returns false when key is absent or
// already expired.
func (s *Store) Expire(key string, ttl time.Duration) bool {
	now := s.clock()
	return s.entries.Mutate(key, func(entry *domain.Entry, ok bool) (*domain.Entry, bool) {
		if !ok || entry.Expired(now) {
			return entry, false
		}
		return entry.Touch(ttl, now), true
	})
}

// TTL reports the remaining lifetime of key. hasExpiry is false for
// entries stored without a TTL. exists is false when key is absent;
// an expired entry reads the same as an absent one.
func (s *Store) TTL(key string) (remaining time.Duration, hasExpiry bool, exists bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return 0, false, false
	}

	now := s.clock()
	if entry.Expired(now) {
		return 0, false, false
	}

	remaining, hasExpiry = entry.Remaining(now)
	return remaining, hasExpiry, true
}

// Keys returns the keys of all live entries in no particular order.
func (s *Store) Keys() []string {
	now := s.clock()
	keys := make([]string, 0, s.entries.Count())
	s.entries.Range(func(key string, entry *domain.Entry) bool {
		if !entry.Expired(now) {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	now := s.clock()
	count := 0
	s.entries.Range(func(_ string, entry *domain.Entry) bool {
		if !entry.Expired(now) {
			count++
		}
		return true
	})
	return count
}

// Clear removes every entry, live or expired. Returns the number of
// entries removed.
func (s *Store) Clear() int {
	return s.entries.Clear()
}

// SweepExpired removes entries whose TTL has lapsed and returns the
// count. Candidates are collected under read locks, then each is
// re-checked under its shard's write lock before removal, so a key
// overwritten mid-sweep survives.
func (s *Store) SweepExpired() int {
	var stale []string

	now := s.clock()
	s.entries.Range(func(key string, entry *domain.Entry) bool {
		if entry.Expired(now) {
			stale = append(stale, key)
		}
		return true
	})

	removed := 0
	for _, key := range stale {
		expired := func(entry *domain.Entry) bool {
			return entry.Expired(s.clock())
		}
		if s.entries.DeleteIf(key, expired) {
			removed++
		}
	}

	return removed
}
