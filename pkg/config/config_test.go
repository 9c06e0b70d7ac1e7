package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "backend: memory\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Redis.Addr != "127.0.0.1:6379" {
		t.Errorf("expected default redis addr, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.KeyPrefix != "pulse" {
		t.Errorf("expected default key prefix, got %q", cfg.Redis.KeyPrefix)
	}
	if cfg.SQLite.Path != "pulse.db" {
		t.Errorf("expected default sqlite path, got %q", cfg.SQLite.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("expected default logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadConfig_ParsesFullFile(t *testing.T) {
	path := writeConfig(t, `
backend: redis
redis:
  addr: redis.internal:6379
  key_prefix: app
  ttl: 48h
middleware:
  buckets: [0.1, 0.5, 1.0]
  exclusions:
    - /healthz
flush:
  schedule: "0 0 * * *"
logging:
  level: debug
  format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Backend != "redis" {
		t.Errorf("expected redis backend, got %q", cfg.Backend)
	}
	if cfg.Redis.Addr != "redis.internal:6379" || cfg.Redis.TTL != 48*time.Hour {
		t.Errorf("unexpected redis settings: %+v", cfg.Redis)
	}
	if len(cfg.Middleware.Buckets) != 3 || cfg.Middleware.Buckets[1] != 0.5 {
		t.Errorf("unexpected buckets: %v", cfg.Middleware.Buckets)
	}
	if cfg.Flush.Schedule != "0 0 * * *" {
		t.Errorf("unexpected flush schedule: %q", cfg.Flush.Schedule)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("unexpected logging settings: %+v", cfg.Logging)
	}
}

func TestLoadConfig_RejectsMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad backend", func(c *Config) { c.Backend = "postgres" }, "invalid backend"},
		{"redis without addr", func(c *Config) { c.Backend = "redis"; c.Redis.Addr = "" }, "redis.addr"},
		{"negative ttl", func(c *Config) { c.Backend = "redis"; c.Redis.TTL = -time.Hour }, "ttl"},
		{"sqlite without path", func(c *Config) { c.Backend = "sqlite"; c.SQLite.Path = "" }, "sqlite.path"},
		{"unsorted buckets", func(c *Config) { c.Middleware.Buckets = []float64{1, 0.5} }, "strictly increasing"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "backend: memory\nlogging:\n  level: info\n")

	t.Setenv("PULSE_BACKEND", "sqlite")
	t.Setenv("PULSE_SQLITE_PATH", "/var/lib/pulse/metrics.db")
	t.Setenv("PULSE_LOG_LEVEL", "warn")
	t.Setenv("PULSE_REDIS_TTL", "12h")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Backend != "sqlite" {
		t.Errorf("expected env-selected backend, got %q", cfg.Backend)
	}
	if cfg.SQLite.Path != "/var/lib/pulse/metrics.db" {
		t.Errorf("expected env sqlite path, got %q", cfg.SQLite.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env log level, got %q", cfg.Logging.Level)
	}
	if cfg.Redis.TTL != 12*time.Hour {
		t.Errorf("expected env redis ttl, got %v", cfg.Redis.TTL)
	}
}

func TestLoadConfigWithEnvOverrides_RevalidatesAfterOverride(t *testing.T) {
	path := writeConfig(t, "backend: memory\n")
	t.Setenv("PULSE_BACKEND", "nonsense")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("expected validation to reject the override")
	}
}
