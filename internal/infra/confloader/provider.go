// Package confloader provides configuration loading mechanism.
package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on a
// map provider; koanf falls back to Read for map-backed providers.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider adapts a plain map to koanf's Provider interface. Used by
// LoadMap to layer programmatic overrides (tests, defaults) over file
// and environment sources.
type mapProvider map[string]any

// ReadBytes is unsupported; a map has no byte serialization.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration map.
func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
