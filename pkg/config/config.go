package config

import "time"

// Config is the root configuration structure for Pulse.
type Config struct {
	// Backend selects the storage driver: "memory", "redis" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// Redis contains settings for the Redis backend. Ignored unless
	// Backend is "redis".
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains settings for the SQLite backend. Ignored unless
	// Backend is "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Middleware contains HTTP instrumentation settings.
	Middleware MiddlewareConfig `yaml:"middleware"`

	// Flush contains the scheduled-flush settings.
	Flush FlushConfig `yaml:"flush"`

	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`
}

// RedisConfig contains settings for the Redis backend.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	// Default: "127.0.0.1:6379"
	Addr string `yaml:"addr"`

	// Password authenticates the connection. Empty means no auth.
	Password string `yaml:"password"`

	// DB selects the Redis database number.
	DB int `yaml:"db"`

	// KeyPrefix namespaces every key written by the driver.
	// Default: "pulse"
	KeyPrefix string `yaml:"key_prefix"`

	// TTL is the per-key expiry applied to written keys. Zero disables
	// expiry.
	TTL time.Duration `yaml:"ttl"`

	// OpTimeout bounds each store round-trip.
	// Default: 3s
	OpTimeout time.Duration `yaml:"op_timeout"`
}

// SQLiteConfig contains settings for the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file location.
	// Default: "pulse.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// MiddlewareConfig contains HTTP instrumentation settings.
type MiddlewareConfig struct {
	// Buckets overrides the request-duration histogram buckets.
	Buckets []float64 `yaml:"buckets"`

	// ExclusionFile is an optional YAML file of path patterns to skip.
	// The file is watched and hot-reloaded on change.
	ExclusionFile string `yaml:"exclusion_file"`

	// Exclusions is a static pattern list applied in addition to the
	// file-based one.
	Exclusions []string `yaml:"exclusions"`
}

// FlushConfig contains the scheduled-flush settings.
type FlushConfig struct {
	// Schedule is a standard 5-field cron expression. Empty disables
	// scheduled flushing.
	Schedule string `yaml:"schedule"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or
	// "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output encoding: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}
