package metrics

import (
	"regexp"
	"strings"
	"testing"
)

func TestRenderText_CounterTypeHeader(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("foo", "A counter named foo.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	body := d.Metrics()
	if !strings.Contains(body, "# TYPE foo_total counter\n") {
		t.Errorf("expected suffixed TYPE header in output:\n%s", body)
	}
	if !strings.Contains(body, "# HELP foo_total A counter named foo.\n") {
		t.Errorf("expected HELP header in output:\n%s", body)
	}
}

func TestRenderText_CounterZeroDefault(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("untouched_total", "Never incremented.", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	body := d.Metrics()
	if !strings.Contains(body, "untouched_total 0\n") {
		t.Errorf("expected a zero-valued default line:\n%s", body)
	}
}

func TestRenderText_TrailingNewline(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("x_total", "x", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	d.IncrementCounter("x_total", nil, 1)

	body := d.Metrics()
	if !strings.HasSuffix(body, "\n") {
		t.Error("output must end with a trailing newline")
	}
	if strings.HasSuffix(body, "\n\n") {
		t.Error("output must end with exactly one trailing newline")
	}
}

func TestRenderText_QuoteEscaping(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("quoted_total", "Quoted.", []string{"q"}); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}
	d.IncrementCounter("quoted_total", Labels{{Name: "q", Value: `say "hi"`}}, 1)

	body := d.Metrics()
	escaped := regexp.MustCompile(`quoted_total\{q="say \\"hi\\""\} 1`)
	if !escaped.MatchString(body) {
		t.Errorf("expected escaped quotes in output:\n%s", body)
	}
}

func TestRenderText_RegistrationOrder(t *testing.T) {
	d := newTestDriver()
	for _, name := range []string{"zz_total", "aa_total"} {
		if _, err := d.RegisterCounter(name, "x", nil); err != nil {
			t.Fatalf("RegisterCounter(%q) failed: %v", name, err)
		}
	}

	body := d.Metrics()
	zz := strings.Index(body, "# TYPE zz_total")
	aa := strings.Index(body, "# TYPE aa_total")
	if zz < 0 || aa < 0 {
		t.Fatalf("missing TYPE headers:\n%s", body)
	}
	if zz > aa {
		t.Error("metrics must render in registration order, not alphabetical")
	}
}

func TestRenderText_GaugeZeroDefault(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterGauge("idle_workers", "Idle.", nil); err != nil {
		t.Fatalf("RegisterGauge failed: %v", err)
	}

	body := d.Metrics()
	if !strings.Contains(body, "# TYPE idle_workers gauge\n") {
		t.Errorf("expected gauge TYPE header:\n%s", body)
	}
	if !strings.Contains(body, "idle_workers 0\n") {
		t.Errorf("expected a zero-valued default line:\n%s", body)
	}
}

func TestRenderText_SummarySumAndCountOnly(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterSummary("payload_bytes", "Payload sizes.", nil,
		map[float64]float64{0.5: 0.05}); err != nil {
		t.Fatalf("RegisterSummary failed: %v", err)
	}
	d.ObserveSummary("payload_bytes", 10, nil, nil)
	d.ObserveSummary("payload_bytes", 30, nil, nil)

	body := d.Metrics()
	if !strings.Contains(body, "payload_bytes_sum 40\n") {
		t.Errorf("expected summary sum line:\n%s", body)
	}
	if !strings.Contains(body, "payload_bytes_count 2\n") {
		t.Errorf("expected summary count line:\n%s", body)
	}
	if strings.Contains(body, `quantile=`) {
		t.Errorf("quantile lines must not be emitted:\n%s", body)
	}
}

func TestRenderText_HistogramNoLabels(t *testing.T) {
	d := newTestDriver()
	d.ObserveHistogram("plain_seconds", 0.05, nil, []float64{0.1, 1})

	body := d.Metrics()
	// With an empty label set the synthesized le label stands alone.
	if !strings.Contains(body, `plain_seconds_bucket{le="0.1"} 1`+"\n") {
		t.Errorf("expected bare le bucket line:\n%s", body)
	}
	if !strings.Contains(body, "plain_seconds_count 1\n") {
		t.Errorf("expected unlabeled count line:\n%s", body)
	}
}

func TestRenderText_UnregisteredDataStillRenders(t *testing.T) {
	d := newTestDriver()
	// Data written without registration must not vanish from a scrape.
	d.IncrementCounter("adhoc", nil, 4)
	d.SetGauge("adhoc_depth", 2, nil)

	body := d.Metrics()
	if !strings.Contains(body, "# TYPE adhoc_total counter\n") {
		t.Errorf("expected a TYPE header for the unregistered counter:\n%s", body)
	}
	if strings.Contains(body, "# HELP adhoc_total") {
		t.Errorf("unregistered metrics have no help text to emit:\n%s", body)
	}
	if !strings.Contains(body, "adhoc_total 4\n") {
		t.Errorf("expected unregistered counter sample:\n%s", body)
	}
	if !strings.Contains(body, "adhoc_depth 2\n") {
		t.Errorf("expected unregistered gauge sample:\n%s", body)
	}
}

func TestRenderText_HelpEscaping(t *testing.T) {
	d := newTestDriver()
	if _, err := d.RegisterCounter("multi_total", "line one\nline two", nil); err != nil {
		t.Fatalf("RegisterCounter failed: %v", err)
	}

	body := d.Metrics()
	if !strings.Contains(body, `# HELP multi_total line one\nline two`+"\n") {
		t.Errorf("expected escaped newline in HELP text:\n%s", body)
	}
}

func TestRenderText_DegradesToErrorComment(t *testing.T) {
	// A nil registry makes the walk panic; the whole response must
	// degrade to a single error comment line.
	out := RenderText(nil, NewSnapshot())
	if !strings.HasPrefix(out, "# Error generating metrics: ") {
		t.Errorf("expected degraded error comment, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("error comment must be newline-terminated")
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
}

func TestRenderText_EmptyEngine(t *testing.T) {
	d := newTestDriver()
	if body := d.Metrics(); body != "" {
		t.Errorf("an empty engine renders an empty body, got %q", body)
	}
}
