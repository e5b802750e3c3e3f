// Package domain defines the core domain models for memkv.
package domain

import "time"

// Entry represents one stored value.
//
// Entries are immutable once created: overwrites and TTL changes produce a
// replacement Entry rather than mutating in place, so a reader holding an
// Entry never observes a concurrent modification.
type Entry struct {
	// Value is the stored payload. Owned by the entry; callers that need
	// to hold bytes past the next store operation use ValueCopy.
	Value []byte

	// CreatedAt is the creation instant. Taken from a monotonic clock so
	// wall-clock adjustments cannot expire or resurrect entries.
	CreatedAt time.Time

	// TTL is the time-to-live relative to CreatedAt. Zero means the entry
	// never expires.
	TTL time.Duration
}

// NewEntry creates an entry holding a private copy of value.
func NewEntry(value []byte, ttl time.Duration, now time.Time) *Entry {
	owned := make([]byte, len(value))
	copy(owned, value)
	return &Entry{
		Value:     owned,
		CreatedAt: now,
		TTL:       ttl,
	}
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
//
// The comparison is strict and millisecond-resolution: an entry whose age
// equals its TTL exactly is still live. This is the only expiry predicate
// in the codebase; every read and sweep path goes through it.
func (e *Entry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return false
	}
	return now.Sub(e.CreatedAt).Milliseconds() > e.TTL.Milliseconds()
}

// Remaining returns the time left before expiry at the given instant.
// The second return is false when the entry has no expiry. An elapsed
// TTL reports zero remaining, never a negative duration.
func (e *Entry) Remaining(now time.Time) (time.Duration, bool) {
	if e.TTL <= 0 {
		return 0, false
	}
	left := e.TTL - now.Sub(e.CreatedAt)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Touch returns a replacement entry sharing the same value with a new TTL
// counted from now. Used by EXPIRE-style operations.
func (e *Entry) Touch(ttl time.Duration, now time.Time) *Entry {
	return &Entry{
		Value:     e.Value,
		CreatedAt: now,
		TTL:       ttl,
	}
}

// ValueCopy returns a fresh copy of the stored payload.
func (e *Entry) ValueCopy() []byte {
	out := make([]byte, len(e.Value))
	copy(out, e.Value)
	return out
}
