// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.RESP.Addr == "" {
		return errors.New("server.resp.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.RESP.Addr); err != nil {
		return fmt.Errorf("server.resp.addr: %w", err)
	}

	if cfg.RESP.IdleTimeout < 0 || cfg.RESP.ReadTimeout < 0 || cfg.RESP.WriteTimeout < 0 {
		return errors.New("server.resp timeouts cannot be negative")
	}

	if cfg.Ops.Enabled {
		if cfg.Ops.Addr == "" {
			return errors.New("server.ops.addr is required when ops is enabled")
		}
		if _, _, err := net.SplitHostPort(cfg.Ops.Addr); err != nil {
			return fmt.Errorf("server.ops.addr: %w", err)
		}
	}

	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.ShardCount <= 0 || cfg.ShardCount&(cfg.ShardCount-1) != 0 {
		return errors.New("store.shard_count must be a power of 2")
	}
	if cfg.SweepInterval < 0 {
		return errors.New("store.sweep_interval cannot be negative")
	}
	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.MaxConns < 0 {
		return errors.New("limits.max_conns cannot be negative")
	}
	if cfg.RatePerIP < 0 {
		return errors.New("limits.rate_per_ip cannot be negative")
	}
	if cfg.RatePerIP > 0 && cfg.BurstPerIP < 1 {
		return errors.New("limits.burst_per_ip must be at least 1 when rate limiting is enabled")
	}
	return nil
}
