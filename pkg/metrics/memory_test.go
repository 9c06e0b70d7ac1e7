package metrics

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestDriver() *MemoryDriver {
	return NewMemoryDriver(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryDriver_CounterIncrement(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("api_requests_total", "Total API requests.",
		[]string{"endpoint", "method", "status", "user_id"}); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	labels := Labels{
		{Name: "endpoint", Value: "/api/users"},
		{Name: "method", Value: "GET"},
		{Name: "status", Value: "200"},
		{Name: "user_id", Value: "123"},
	}
	d.IncrementCounter("api_requests_total", labels, 1)
	d.IncrementCounter("api_requests_total", labels, 1)

	if got := d.CounterValue("api_requests_total", labels); got != 2 {
		t.Errorf("expected counter value 2, got %d", got)
	}

	body := d.Metrics()
	want := `api_requests_total{endpoint="/api/users",method="GET",status="200",user_id="123"} 2`
	if !strings.Contains(body, want+"\n") {
		t.Errorf("expected line %q in output:\n%s", want, body)
	}
}

func TestMemoryDriver_CounterSuffixEnforcedOnKey(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("jobs", "Jobs.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	// Caller omits the suffix at the call site; the key still carries it.
	d.IncrementCounter("jobs", nil, 3)
	if got := d.CounterValue("jobs_total", nil); got != 3 {
		t.Errorf("expected 3 under the suffixed key, got %d", got)
	}
	if got := d.CounterValue("jobs", nil); got != 3 {
		t.Errorf("suffix must be enforced for reads too, got %d", got)
	}
}

func TestMemoryDriver_CounterValueUnseen(t *testing.T) {
	d := newTestDriver()
	if got := d.CounterValue("never_incremented_total", nil); got != 0 {
		t.Errorf("unseen counter must read 0, got %d", got)
	}
}

func TestMemoryDriver_HistogramExposition(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterHistogram("test_histogram_seconds", "A test histogram.",
		[]string{"label"}, []float64{0.1, 0.5, 1.0}); err != nil {
		t.Fatalf("RegisterHistogram failed: %v", err)
	}

	labels := Labels{{Name: "label", Value: "value"}}
	d.ObserveHistogram("test_histogram_seconds", 0.3, labels, nil)

	body := d.Metrics()
	want := []string{
		`test_histogram_seconds_bucket{label="value",le="0.1"} 0`,
		`test_histogram_seconds_bucket{label="value",le="0.5"} 1`,
		`test_histogram_seconds_bucket{label="value",le="1"} 1`,
		`test_histogram_seconds_bucket{label="value",le="+Inf"} 1`,
		`test_histogram_seconds_sum{label="value"} 0.3`,
		`test_histogram_seconds_count{label="value"} 1`,
	}
	for _, line := range want {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("expected line %q in output:\n%s", line, body)
		}
	}
}

func TestMemoryDriver_HistogramAccessors(t *testing.T) {
	d := newTestDriver()
	labels := Labels{{Name: "op", Value: "read"}}
	d.ObserveHistogram("io_seconds", 0.2, labels, []float64{0.1, 1})
	d.ObserveHistogram("io_seconds", 0.4, labels, []float64{0.1, 1})

	if got := d.HistogramCount("io_seconds", labels); got != 2 {
		t.Errorf("expected count 2, got %d", got)
	}
	sum := d.HistogramSum("io_seconds", labels)
	if sum < 0.599 || sum > 0.601 {
		t.Errorf("expected sum ~0.6, got %g", sum)
	}
}

func TestMemoryDriver_HistogramRegisteredBucketsWin(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterHistogram("latency_seconds", "Latency.", nil,
		[]float64{1, 2}); err != nil {
		t.Fatalf("RegisterHistogram failed: %v", err)
	}

	// Per-call bucket arguments do not override the registered set.
	d.ObserveHistogram("latency_seconds", 1.5, nil, []float64{10, 20})

	body := d.Metrics()
	if !strings.Contains(body, `latency_seconds_bucket{le="2"} 1`+"\n") {
		t.Errorf("expected registered bucket le=2 in output:\n%s", body)
	}
	if strings.Contains(body, `le="10"`) {
		t.Errorf("caller buckets must not override registered buckets:\n%s", body)
	}
}

func TestMemoryDriver_Gauge(t *testing.T) {
	d := newTestDriver()
	labels := Labels{{Name: "queue", Value: "default"}}

	d.SetGauge("queue_depth", 5, labels)
	if got := d.GaugeValue("queue_depth", labels); got != 5 {
		t.Errorf("expected 5, got %g", got)
	}

	d.IncrementGauge("queue_depth", 2, labels)
	if got := d.GaugeValue("queue_depth", labels); got != 7 {
		t.Errorf("expected 7, got %g", got)
	}

	// Never clamped at zero.
	d.DecrementGauge("queue_depth", 10, labels)
	if got := d.GaugeValue("queue_depth", labels); got != -3 {
		t.Errorf("expected -3, got %g", got)
	}
}

func TestMemoryDriver_Summary(t *testing.T) {
	d := newTestDriver()
	d.ObserveSummary("payload_bytes", 100, nil, nil)
	d.ObserveSummary("payload_bytes", 250, nil, nil)

	if got := d.SummaryCount("payload_bytes", nil); got != 2 {
		t.Errorf("expected count 2, got %d", got)
	}
	if got := d.SummarySum("payload_bytes", nil); got != 350 {
		t.Errorf("expected sum 350, got %g", got)
	}
}

func TestMemoryDriver_SummaryRetentionBound(t *testing.T) {
	d := newTestDriver()
	for i := 0; i < summaryRetention+100; i++ {
		d.ObserveSummary("big_summary", float64(i), nil, nil)
	}

	d.mu.RLock()
	acc := d.summaries["big_summary"][""]
	d.mu.RUnlock()
	if acc == nil {
		t.Fatal("expected an accumulator")
	}
	if len(acc.values) != summaryRetention {
		t.Errorf("expected retention capped at %d, got %d", summaryRetention, len(acc.values))
	}
	if acc.count != uint64(summaryRetention+100) {
		t.Errorf("count must keep growing past the retention bound, got %d", acc.count)
	}
}

func TestMemoryDriver_TrackUnique(t *testing.T) {
	d := newTestDriver()
	fixed := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	labels := Labels{{Name: "plan", Value: "pro"}}
	d.TrackUnique("users", "123", labels)
	d.TrackUnique("users", "123", labels)
	d.TrackUnique("users", "456", labels)

	body := d.Metrics()
	want := `unique_users_total{plan="pro",date="2026-08-28"} 2`
	if !strings.Contains(body, want+"\n") {
		t.Errorf("expected line %q in output:\n%s", want, body)
	}
	if !strings.Contains(body, "# TYPE unique_users_total counter\n") {
		t.Errorf("expected a counter TYPE header for the unique group:\n%s", body)
	}
}

func TestMemoryDriver_TrackUniqueNameNormalization(t *testing.T) {
	d := newTestDriver()
	// All spellings of the same base collapse onto one normalized name.
	d.TrackUnique("unique_visitors_total", "a", nil)
	d.TrackUnique("visitors", "b", nil)
	d.TrackUnique("sessions", "c", nil)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.unique) != 2 {
		t.Fatalf("expected 2 unique metric names, got %d", len(d.unique))
	}
	for name := range d.unique {
		if !strings.HasPrefix(name, "unique_") || !strings.HasSuffix(name, "_total") {
			t.Errorf("unique metric name not normalized: %q", name)
		}
	}

	var visitors uint64
	for _, set := range d.unique["unique_visitors_total"] {
		visitors += set.count
	}
	if visitors != 2 {
		t.Errorf("expected both visitor spellings to land on one metric, got count %d", visitors)
	}
}

func TestMemoryDriver_Flush(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("flushed_total", "Flushed.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	d.IncrementCounter("flushed_total", nil, 5)

	if !d.Flush() {
		t.Fatal("Flush must report success")
	}

	if got := d.CounterValue("flushed_total", nil); got != 0 {
		t.Errorf("expected 0 after flush, got %d", got)
	}
	if d.Registry().Len() != 0 {
		t.Error("registry metadata must be cleared by flush")
	}
	if body := d.Metrics(); strings.Contains(body, "flushed_total") {
		t.Errorf("flushed metric still rendered:\n%s", body)
	}
}

func TestMemoryDriver_Concurrent(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("concurrent_total", "Concurrent.", []string{"worker"}); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			shared := Labels{{Name: "worker", Value: "shared"}}
			for i := 0; i < perWorker; i++ {
				d.IncrementCounter("concurrent_total", shared, 1)
				d.ObserveHistogram("concurrent_seconds", 0.01, nil, nil)
				if i%50 == 0 {
					// Renders racing with writers must not corrupt state.
					_ = d.Metrics()
				}
			}
		}(w)
	}
	wg.Wait()

	shared := Labels{{Name: "worker", Value: "shared"}}
	if got := d.CounterValue("concurrent_total", shared); got != workers*perWorker {
		t.Errorf("expected %d, got %d", workers*perWorker, got)
	}
	if got := d.HistogramCount("concurrent_seconds", nil); got != workers*perWorker {
		t.Errorf("expected %d observations, got %d", workers*perWorker, got)
	}
}

func TestMemoryDriver_MalformedInputNeverPanics(t *testing.T) {
	d := newTestDriver()
	// Malformed names and labels are corrected, logged, and must never
	// break the caller.
	d.IncrementCounter("bad name!", Labels{{Name: "__weird", Value: "\"quoted\"\n"}}, 1)
	d.ObserveHistogram("also.bad", 1.0, Labels{{Name: "le-ish", Value: "x"}}, nil)
	d.TrackUnique("user count", "id-1", nil)

	body := d.Metrics()
	if strings.Contains(body, "# Error generating metrics") {
		t.Errorf("render degraded unexpectedly:\n%s", body)
	}
}
