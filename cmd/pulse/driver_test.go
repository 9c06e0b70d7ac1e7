package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"helios-hq/pulse/pkg/config"
)

func TestOpenDriver_SelectsBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "metrics.db")

	for _, backend := range []string{"memory", "sqlite"} {
		cfg.Backend = backend
		driver, err := openDriver(cfg, nil)
		if err != nil {
			t.Fatalf("openDriver(%s) failed: %v", backend, err)
		}
		if driver == nil {
			t.Fatalf("openDriver(%s) returned nil", backend)
		}
		driver.Close()
	}

	cfg.Backend = "nonsense"
	if _, err := openDriver(cfg, nil); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestFlushAndDump_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "metrics.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "backend: sqlite\nsqlite:\n  path: " + dbPath + "\nlogging:\n  format: text\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	driver, err := openDriver(cfg, nil)
	if err != nil {
		t.Fatalf("openDriver failed: %v", err)
	}
	if _, err := driver.RegisterCounter("seeded_total", "Seeded.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	driver.IncrementCounter("seeded_total", nil, 7)

	if !strings.Contains(driver.Metrics(), "seeded_total 7\n") {
		t.Fatalf("expected the seeded sample in the dump:\n%s", driver.Metrics())
	}
	if !driver.Flush() {
		t.Fatal("expected the flush to succeed")
	}
	if got := driver.CounterValue("seeded_total", nil); got != 0 {
		t.Errorf("expected 0 after flush, got %d", got)
	}
	driver.Close()
}
