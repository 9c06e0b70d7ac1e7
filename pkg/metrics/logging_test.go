package metrics

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggingDriver_ForwardsOperations(t *testing.T) {
	inner := newTestDriver()
	d := NewLoggingDriver(inner, testLogger())

	if _, err := d.RegisterCounter("wrapped_total", "Wrapped.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	d.IncrementCounter("wrapped_total", nil, 2)

	if got := d.CounterValue("wrapped_total", nil); got != 2 {
		t.Errorf("expected 2 through the decorator, got %d", got)
	}
	if got := inner.CounterValue("wrapped_total", nil); got != 2 {
		t.Errorf("expected 2 on the inner driver, got %d", got)
	}

	body := d.Metrics()
	if !strings.Contains(body, "wrapped_total 2\n") {
		t.Errorf("decorator must render the inner state:\n%s", body)
	}
}

func TestLoggingDriver_LogsRegistrationFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := NewLoggingDriver(newTestDriver(), logger)

	if _, err := d.RegisterGauge("conflict", "g", nil); err != nil {
		t.Fatalf("RegisterGauge failed: %v", err)
	}
	_, err := d.RegisterCounter("conflict_total", "c", nil)
	// Different base name, no conflict; force one via the same name.
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := d.RegisterHistogram("conflict", "h", nil, nil); err == nil {
		t.Fatal("expected a kind conflict through the decorator")
	} else if !errors.Is(err, ErrKindConflict) {
		t.Errorf("expected ErrKindConflict, got %v", err)
	}

	if !strings.Contains(buf.String(), "metric registration failed") {
		t.Errorf("expected a registration failure log, got:\n%s", buf.String())
	}
}

func TestLoggingDriver_FlushOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := NewLoggingDriver(newTestDriver(), logger)

	if !d.Flush() {
		t.Fatal("expected flush to succeed")
	}
	if !strings.Contains(buf.String(), "metrics flushed") {
		t.Errorf("expected a flush log entry, got:\n%s", buf.String())
	}
}
