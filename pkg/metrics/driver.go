package metrics

// Driver is the storage-driver contract every metrics backend implements.
// The in-memory driver is the reference; the redis and sqlite subpackages
// implement the same contract against remote and file-based stores.
//
// Registration operations return hard errors only for logical conflicts
// (cross-kind name collision, reserved declared labels). Mutators never
// return errors: per-operation failures are caught at the boundary,
// logged, and converted to safe no-ops so they cannot break the caller's
// request-handling path. Value getters return zero values for unseen
// keys. Implementations must be safe for concurrent use.
type Driver interface {
	// RegisterCounter registers a counter. The name receives a "_total"
	// suffix if absent. Idempotent under the same kind.
	RegisterCounter(name, help string, labelNames []string) (*Descriptor, error)

	// RegisterGauge registers a gauge.
	RegisterGauge(name, help string, labelNames []string) (*Descriptor, error)

	// RegisterHistogram registers a histogram with the given upper
	// bounds. An empty bucket list falls back to DefBuckets.
	RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*Descriptor, error)

	// RegisterSummary registers a summary with the given quantile
	// configuration. Quantiles are stored, never computed.
	RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*Descriptor, error)

	// IncrementCounter adds delta (minimum 1) to a counter key,
	// auto-creating it at zero.
	IncrementCounter(name string, labels Labels, delta uint64)

	// ObserveHistogram records one observation. The accumulator's
	// bucket set is fixed at first observation for the key: registered
	// buckets win, then the caller-supplied list, then DefBuckets.
	ObserveHistogram(name string, value float64, labels Labels, buckets []float64)

	// SetGauge overwrites a gauge value.
	SetGauge(name string, value float64, labels Labels)

	// IncrementGauge adds delta to a gauge, initializing at zero.
	IncrementGauge(name string, delta float64, labels Labels)

	// DecrementGauge subtracts delta from a gauge, initializing at
	// zero. Gauges are never clamped at zero.
	DecrementGauge(name string, delta float64, labels Labels)

	// ObserveSummary records one observation: count, sum, and a bounded
	// window of raw values.
	ObserveSummary(name string, value float64, labels Labels, quantiles map[float64]float64)

	// TrackUnique counts identifier once per day per label combination.
	// The metric name is normalized to carry a "unique_" prefix and
	// "_total" suffix, and a "date" label holding the current calendar
	// date is injected automatically.
	TrackUnique(name, identifier string, labels Labels)

	// CounterValue returns the counter value, 0 for unseen keys.
	CounterValue(name string, labels Labels) uint64

	// HistogramSum returns the histogram sum, 0 for unseen keys.
	HistogramSum(name string, labels Labels) float64

	// HistogramCount returns the observation count, 0 for unseen keys.
	HistogramCount(name string, labels Labels) uint64

	// GaugeValue returns the gauge value, 0 for unseen keys.
	GaugeValue(name string, labels Labels) float64

	// SummarySum returns the summary sum, 0 for unseen keys.
	SummarySum(name string, labels Labels) float64

	// SummaryCount returns the summary count, 0 for unseen keys.
	SummaryCount(name string, labels Labels) uint64

	// Metrics renders the full exposition text body, terminated by a
	// trailing newline. A failure during the walk degrades the whole
	// response to a single "# Error generating metrics: ..." line.
	Metrics() string

	// Flush clears all accumulators. The boolean result replaces error
	// propagation so operational tooling can branch without ceremony.
	Flush() bool

	// Close releases backend resources. The driver must not be used
	// after Close.
	Close() error
}
