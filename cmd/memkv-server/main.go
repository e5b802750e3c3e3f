// Package main provides the entry point for memkv-server.
//
// memkv-server is an in-memory key-value server speaking a RESP-style
// wire protocol, with per-key TTL expiry and an operational HTTP
// endpoint for health and metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/memkv-go/internal/infra/buildinfo"
	"github.com/yndnr/memkv-go/internal/infra/confloader"
	"github.com/yndnr/memkv-go/internal/infra/shutdown"
	"github.com/yndnr/memkv-go/internal/server/config"
	"github.com/yndnr/memkv-go/internal/server/httpserver"
	"github.com/yndnr/memkv-go/internal/server/respserver"
	"github.com/yndnr/memkv-go/internal/storage/memory"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("memkv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting memkv-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	store := memory.New(memory.WithShardCount(cfg.Store.ShardCount))

	metrics := metric.Global()
	metrics.MustRegister(metric.NewStoreCollector(store))

	respSrv := respserver.New(&respserver.Config{
		Addr:          cfg.Server.RESP.Addr,
		IdleTimeout:   cfg.Server.RESP.IdleTimeout,
		ReadTimeout:   cfg.Server.RESP.ReadTimeout,
		WriteTimeout:  cfg.Server.RESP.WriteTimeout,
		MaxConns:      cfg.Limits.MaxConns,
		RatePerIP:     cfg.Limits.RatePerIP,
		BurstPerIP:    cfg.Limits.BurstPerIP,
		SweepInterval: cfg.Store.SweepInterval,
	}, store, log, metrics)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	ctx := context.Background()
	if err := respSrv.Start(ctx); err != nil {
		return fmt.Errorf("start resp server: %w", err)
	}
	shutdownHandler.OnShutdown("resp server", respSrv.Shutdown)

	if cfg.Server.Ops.Enabled {
		opsSrv := httpserver.New(cfg.Server.Ops.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Stats:   store,
			Metrics: metrics,
			Logger:  log,
		}))
		go func() {
			log.Info("ops endpoint listening", "addr", cfg.Server.Ops.Addr)
			if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("ops server error", "error", err)
			}
		}()
		shutdownHandler.OnShutdown("ops server", opsSrv.Shutdown)
	}

	// Hot-reload the log level when the config file changes.
	if *configFile != "" {
		watcher, err := watchLogLevel(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// watchLogLevel re-reads the log level from the config file whenever it
// changes on disk. Only the level is applied live; other settings still
// need a restart.
func watchLogLevel(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "level", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})
	watcher.StartAsync()

	return watcher, nil
}
