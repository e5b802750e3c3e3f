// Package domain defines the core domain models for memkv.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Entry: Stored value with creation time and optional TTL
//   - Errors: Domain-specific error definitions
//
// Expiry is decided in exactly one place, Entry.Expired, so that the
// read path and the sweep path can never diverge.
package domain
