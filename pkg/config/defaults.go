package config

import "time"

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with their defaults.
// Explicit values, including explicit zeros where they are meaningful,
// are left untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "pulse"
	}
	if cfg.Redis.OpTimeout == 0 {
		cfg.Redis.OpTimeout = 3 * time.Second
	}

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "pulse.db"
	}
	if cfg.SQLite.BusyTimeout == 0 {
		cfg.SQLite.BusyTimeout = 5 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
