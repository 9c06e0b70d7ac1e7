package metrics

import "log/slog"

// Kind identifies the metric type of a registered descriptor.
// The set is closed: the storage engine and renderer exhaustively
// dispatch on it.
type Kind int

const (
	// KindCounter is a monotonically increasing integer accumulator.
	KindCounter Kind = iota

	// KindGauge is a float value that can be set, incremented and
	// decremented in place.
	KindGauge

	// KindHistogram tracks observation counts per upper-bound bucket
	// together with a running sum and count.
	KindHistogram

	// KindSummary tracks a running sum and count plus a bounded window
	// of raw observations.
	KindSummary
)

// String returns the exposition-format TYPE token for the kind.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	case KindSummary:
		return "summary"
	default:
		return "untyped"
	}
}

// DefBuckets is the default histogram bucket set used when neither the
// registration nor the observation supplies one. The renderer appends the
// +Inf bucket during normalization.
var DefBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// summaryRetention caps the number of raw observations a summary retains.
const summaryRetention = 1000

// Descriptor holds the registration-time metadata for one metric name.
// A single descriptor is shared by every label combination of the metric.
// Descriptors are created once and never mutated after registration.
type Descriptor struct {
	// Name is the validated, normalized metric name.
	Name string

	// Help is the text emitted on the # HELP line.
	Help string

	// Kind is the metric type.
	Kind Kind

	// LabelNames is the ordered set of declared label names.
	LabelNames []string

	// Buckets is the sorted, deduplicated upper-bound list for
	// histograms. It always ends with +Inf. Nil for other kinds.
	Buckets []float64

	// Quantiles maps quantile to error tolerance for summaries.
	// Quantile values are retained for the contract only; no estimation
	// is performed. Nil for other kinds.
	Quantiles map[float64]float64
}

// DiagnosticLevel classifies a validation diagnostic.
type DiagnosticLevel int

const (
	// DiagInfo marks benign auto-corrections such as counter suffixing.
	DiagInfo DiagnosticLevel = iota

	// DiagWarning marks corrections of malformed input.
	DiagWarning
)

// Diagnostic is a structured event produced by the validators. Validation
// never fails; it returns a corrected identifier plus diagnostics, and the
// caller decides whether to log them.
type Diagnostic struct {
	// Level is the severity of the event.
	Level DiagnosticLevel

	// Message describes the correction.
	Message string

	// Context carries the raw and corrected values involved.
	Context map[string]any
}

// LogDiagnostics routes validation diagnostics to a structured logger.
// Drivers in subpackages share it so corrections log identically
// regardless of backend.
func LogDiagnostics(logger *slog.Logger, diags []Diagnostic) {
	if logger == nil || len(diags) == 0 {
		return
	}
	for _, d := range diags {
		args := make([]any, 0, len(d.Context)*2)
		for _, k := range sortedKeys(d.Context) {
			args = append(args, k, d.Context[k])
		}
		switch d.Level {
		case DiagInfo:
			logger.Info(d.Message, args...)
		default:
			logger.Warn(d.Message, args...)
		}
	}
}

// sortedKeys returns the map keys in lexicographic order so log output
// is deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
