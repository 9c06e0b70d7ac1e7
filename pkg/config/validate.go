package config

import "fmt"

var validBackends = map[string]bool{
	"memory": true,
	"redis":  true,
	"sqlite": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Validate checks the configuration for invalid or inconsistent values.
// Only the sections relevant to the selected backend are checked.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if !validBackends[cfg.Backend] {
		return fmt.Errorf("invalid backend %q (must be memory, redis or sqlite)", cfg.Backend)
	}

	switch cfg.Backend {
	case "redis":
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis backend requires redis.addr")
		}
		if cfg.Redis.DB < 0 {
			return fmt.Errorf("redis.db cannot be negative")
		}
		if cfg.Redis.TTL < 0 {
			return fmt.Errorf("redis.ttl cannot be negative")
		}
	case "sqlite":
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("sqlite backend requires sqlite.path")
		}
	}

	for i, b := range cfg.Middleware.Buckets {
		if i > 0 && b <= cfg.Middleware.Buckets[i-1] {
			return fmt.Errorf("middleware.buckets must be strictly increasing")
		}
	}

	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging.level %q (must be debug, info, warn or error)", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q (must be json or text)", cfg.Logging.Format)
	}

	return nil
}
