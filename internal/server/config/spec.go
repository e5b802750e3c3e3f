// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for memkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Limits LimitsSection `koanf:"limits"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	RESP RESPConfig `koanf:"resp"`
	Ops  OpsConfig  `koanf:"ops"`
}

// RESPConfig configures the RESP protocol listener.
type RESPConfig struct {
	// Addr is the TCP listen address (host:port).
	Addr string `koanf:"addr"`

	// IdleTimeout closes connections with no inbound command for this long.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ReadTimeout bounds reading the remainder of a command once its first
	// byte has arrived.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing one reply.
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// OpsConfig configures the operational HTTP endpoint.
type OpsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures store behavior.
type StoreSection struct {
	// ShardCount is the number of map shards. Must be a power of 2.
	ShardCount int `koanf:"shard_count"`

	// SweepInterval is the janitor sweep period. Zero disables the
	// janitor; per-request sweeps still run.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// LimitsSection configures connection admission limits.
type LimitsSection struct {
	// MaxConns caps concurrently served connections. Zero means no cap.
	MaxConns int `koanf:"max_conns"`

	// RatePerIP is the sustained new-connection rate allowed per client
	// IP, in connections per second. Zero disables rate limiting.
	RatePerIP float64 `koanf:"rate_per_ip"`

	// BurstPerIP is the burst size of the per-IP limiter.
	BurstPerIP int `koanf:"burst_per_ip"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
