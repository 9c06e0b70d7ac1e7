package sqlite

import (
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"helios-hq/pulse/pkg/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := New(Config{DBPath: filepath.Join(t.TempDir(), "metrics.db")}, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNew_RejectsEmptyPath(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected an error for an empty db path")
	}
}

func TestDriver_CounterRoundTrip(t *testing.T) {
	d := newTestDriver(t)

	if _, err := d.RegisterCounter("api_requests_total", "Total API requests.", []string{"method", "status"}); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	labels := metrics.Labels{metrics.L("method", "GET"), metrics.L("status", "200")}
	d.IncrementCounter("api_requests_total", labels, 0)
	d.IncrementCounter("api_requests", labels, 2)

	if got := d.CounterValue("api_requests_total", labels); got != 3 {
		t.Errorf("expected counter value 3, got %d", got)
	}

	body := d.Metrics()
	want := `api_requests_total{method="GET",status="200"} 3`
	if !strings.Contains(body, want) {
		t.Errorf("expected %q in exposition:\n%s", want, body)
	}
}

func TestDriver_GaugeOperations(t *testing.T) {
	d := newTestDriver(t)

	if _, err := d.RegisterGauge("queue_depth", "Current queue depth.", nil); err != nil {
		t.Fatalf("RegisterGauge failed: %v", err)
	}

	d.SetGauge("queue_depth", 10, nil)
	d.IncrementGauge("queue_depth", 5, nil)
	d.DecrementGauge("queue_depth", 20, nil)

	if got := d.GaugeValue("queue_depth", nil); got != -5 {
		t.Errorf("expected gauge -5, got %v", got)
	}
}

func TestDriver_HistogramObservations(t *testing.T) {
	d := newTestDriver(t)

	buckets := []float64{0.1, 0.5, 1.0}
	if _, err := d.RegisterHistogram("request_duration_seconds", "Request duration.", nil, buckets); err != nil {
		t.Fatalf("RegisterHistogram failed: %v", err)
	}

	d.ObserveHistogram("request_duration_seconds", 0.3, nil, nil)
	d.ObserveHistogram("request_duration_seconds", 0.05, nil, nil)
	d.ObserveHistogram("request_duration_seconds", 7, nil, nil)

	if got := d.HistogramCount("request_duration_seconds", nil); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
	if got := d.HistogramSum("request_duration_seconds", nil); math.Abs(got-7.35) > 1e-9 {
		t.Errorf("expected sum 7.35, got %v", got)
	}

	body := d.Metrics()
	for _, want := range []string{
		`request_duration_seconds_bucket{le="0.1"} 1`,
		`request_duration_seconds_bucket{le="0.5"} 2`,
		`request_duration_seconds_bucket{le="1"} 2`,
		`request_duration_seconds_bucket{le="+Inf"} 3`,
		"request_duration_seconds_sum 7.35",
		"request_duration_seconds_count 3",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in exposition:\n%s", want, body)
		}
	}
}

func TestDriver_SummaryObservations(t *testing.T) {
	d := newTestDriver(t)

	if _, err := d.RegisterSummary("payload_bytes", "Payload sizes.", nil, map[float64]float64{0.5: 0.05}); err != nil {
		t.Fatalf("RegisterSummary failed: %v", err)
	}

	d.ObserveSummary("payload_bytes", 100, nil, nil)
	d.ObserveSummary("payload_bytes", 250, nil, nil)

	if got := d.SummaryCount("payload_bytes", nil); got != 2 {
		t.Errorf("expected count 2, got %d", got)
	}
	if got := d.SummarySum("payload_bytes", nil); got != 350 {
		t.Errorf("expected sum 350, got %v", got)
	}
}

func TestDriver_TrackUniqueDeduplicates(t *testing.T) {
	d := newTestDriver(t)
	d.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}

	d.TrackUnique("users", "alice", metrics.Labels{metrics.L("plan", "pro")})
	d.TrackUnique("users", "alice", metrics.Labels{metrics.L("plan", "pro")})
	d.TrackUnique("users", "bob", metrics.Labels{metrics.L("plan", "pro")})

	body := d.Metrics()
	want := `unique_users_total{plan="pro",date="2026-08-28"} 2`
	if !strings.Contains(body, want) {
		t.Errorf("expected %q in exposition:\n%s", want, body)
	}
}

func TestDriver_DescriptorsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	d, err := New(Config{DBPath: path}, testLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := d.RegisterHistogram("persisted_seconds", "Persisted.", []string{"route"}, []float64{0.5, 2}); err != nil {
		t.Fatalf("RegisterHistogram failed: %v", err)
	}
	d.ObserveHistogram("persisted_seconds", 1.2, metrics.Labels{metrics.L("route", "/a")}, nil)
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(Config{DBPath: path}, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	desc := reopened.Registry().Lookup("persisted_seconds")
	if desc == nil {
		t.Fatal("expected the descriptor to survive a reopen")
	}
	if desc.Kind != metrics.KindHistogram {
		t.Errorf("expected a histogram descriptor, got %v", desc.Kind)
	}
	if len(desc.Buckets) != 3 || desc.Buckets[0] != 0.5 || desc.Buckets[1] != 2 {
		t.Errorf("expected restored buckets [0.5 2 +Inf], got %v", desc.Buckets)
	}

	if got := reopened.HistogramCount("persisted_seconds", metrics.Labels{metrics.L("route", "/a")}); got != 1 {
		t.Errorf("expected the observation to survive a reopen, got %d", got)
	}
	body := reopened.Metrics()
	if !strings.Contains(body, "# HELP persisted_seconds Persisted.") {
		t.Errorf("expected restored HELP metadata:\n%s", body)
	}
}

func TestDriver_FlushKeepsDescriptors(t *testing.T) {
	d := newTestDriver(t)

	if _, err := d.RegisterCounter("flushed_total", "f", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	d.IncrementCounter("flushed_total", nil, 5)

	if !d.Flush() {
		t.Fatal("expected flush to succeed")
	}
	if got := d.CounterValue("flushed_total", nil); got != 0 {
		t.Errorf("expected 0 after flush, got %d", got)
	}
	if d.Registry().Lookup("flushed_total") == nil {
		t.Error("expected the descriptor to survive the flush")
	}
}

func TestDriver_SummaryRetentionBounded(t *testing.T) {
	d := newTestDriver(t)

	for i := 0; i < summaryRetention+50; i++ {
		d.ObserveSummary("bursty_bytes", float64(i), nil, nil)
	}

	var stored int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM summary_values WHERE name = 'bursty_bytes'`).Scan(&stored); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if stored != summaryRetention {
		t.Errorf("expected the raw-value ring capped at %d, got %d", summaryRetention, stored)
	}
	if got := d.SummaryCount("bursty_bytes", nil); got != summaryRetention+50 {
		t.Errorf("expected the full count %d, got %d", summaryRetention+50, got)
	}
}
