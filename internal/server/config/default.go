// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultListenAddr = "127.0.0.1:6379"
	DefaultOpsAddr    = "127.0.0.1:7379"

	DefaultIdleTimeout  = 5 * time.Minute
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second

	DefaultShardCount    = 16
	DefaultSweepInterval = time.Second

	DefaultMaxConns   = 1024
	DefaultRatePerIP  = 50.0
	DefaultBurstPerIP = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			RESP: RESPConfig{
				Addr:         DefaultListenAddr,
				IdleTimeout:  DefaultIdleTimeout,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
			},
			Ops: OpsConfig{
				Enabled: true,
				Addr:    DefaultOpsAddr,
			},
		},
		Store: StoreSection{
			ShardCount:    DefaultShardCount,
			SweepInterval: DefaultSweepInterval,
		},
		Limits: LimitsSection{
			MaxConns:   DefaultMaxConns,
			RatePerIP:  DefaultRatePerIP,
			BurstPerIP: DefaultBurstPerIP,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
