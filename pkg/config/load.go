package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies PULSE_* environment variable overrides on top. Variables
// follow the convention PULSE_SECTION_FIELD (e.g. PULSE_REDIS_ADDR).
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("PULSE_BACKEND"); val != "" {
		cfg.Backend = val
	}

	if val := os.Getenv("PULSE_REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv("PULSE_REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("PULSE_REDIS_DB"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = n
		}
	}
	if val := os.Getenv("PULSE_REDIS_KEY_PREFIX"); val != "" {
		cfg.Redis.KeyPrefix = val
	}
	if val := os.Getenv("PULSE_REDIS_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Redis.TTL = d
		}
	}
	if val := os.Getenv("PULSE_REDIS_OP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Redis.OpTimeout = d
		}
	}

	if val := os.Getenv("PULSE_SQLITE_PATH"); val != "" {
		cfg.SQLite.Path = val
	}
	if val := os.Getenv("PULSE_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.SQLite.BusyTimeout = d
		}
	}

	if val := os.Getenv("PULSE_MIDDLEWARE_EXCLUSION_FILE"); val != "" {
		cfg.Middleware.ExclusionFile = val
	}

	if val := os.Getenv("PULSE_FLUSH_SCHEDULE"); val != "" {
		cfg.Flush.Schedule = val
	}

	if val := os.Getenv("PULSE_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("PULSE_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
