package main

import (
	"fmt"
	"log/slog"

	"helios-hq/pulse/pkg/config"
	"helios-hq/pulse/pkg/metrics"
	"helios-hq/pulse/pkg/metrics/redis"
	"helios-hq/pulse/pkg/metrics/sqlite"
	"helios-hq/pulse/pkg/telemetry/logging"
)

// loadEnvironment loads the configuration file named by --config and
// builds the logger it describes. --verbose forces debug level.
func loadEnvironment() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg, nil)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// openDriver connects to the backend the configuration selects.
func openDriver(cfg *config.Config, logger *slog.Logger) (metrics.Driver, error) {
	switch cfg.Backend {
	case "memory":
		return metrics.NewMemoryDriver(logger), nil
	case "redis":
		return redis.New(redis.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.TTL,
			OpTimeout: cfg.Redis.OpTimeout,
		}, logger)
	case "sqlite":
		return sqlite.New(sqlite.Config{
			DBPath:      cfg.SQLite.Path,
			BusyTimeout: cfg.SQLite.BusyTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
