package metrics

// Snapshot is a point-in-time copy of a backend's stored state, keyed by
// metric name and encoded label key. Rendering works from structured
// per-kind maps rather than a flat prefixed key space, so grouping can
// never be confused by label values that happen to contain a metric
// name's text.
//
// Backends build a Snapshot under their own locking discipline and hand
// it to RenderText; the renderer never touches live state.
type Snapshot struct {
	// Counters maps metric name -> label key -> accumulated value.
	Counters map[string]map[string]uint64

	// Gauges maps metric name -> label key -> current value.
	Gauges map[string]map[string]float64

	// Histograms maps metric name -> label key -> accumulator data.
	Histograms map[string]map[string]HistogramData

	// Summaries maps metric name -> label key -> accumulator data.
	Summaries map[string]map[string]SummaryData

	// Unique maps derived unique-tracking metric name -> label key
	// (including the injected date label) -> cached unique count.
	Unique map[string]map[string]uint64
}

// HistogramData is the per-key histogram accumulator state at snapshot
// time. BucketCounts holds occurrence counts per upper bound; the
// renderer computes the cumulative values.
type HistogramData struct {
	// Count is the total number of observations.
	Count uint64

	// Sum is the sum of all observed values.
	Sum float64

	// Buckets is the sorted upper-bound list, ending with +Inf.
	Buckets []float64

	// BucketCounts maps each upper bound to the number of observations
	// that landed in that bucket (non-cumulative).
	BucketCounts map[float64]uint64
}

// SummaryData is the per-key summary accumulator state at snapshot time.
// Raw observations are not part of the rendered output and are omitted.
type SummaryData struct {
	// Count is the total number of observations.
	Count uint64

	// Sum is the sum of all observed values.
	Sum float64
}

// NewSnapshot creates an empty snapshot with all maps initialized.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Counters:   make(map[string]map[string]uint64),
		Gauges:     make(map[string]map[string]float64),
		Histograms: make(map[string]map[string]HistogramData),
		Summaries:  make(map[string]map[string]SummaryData),
		Unique:     make(map[string]map[string]uint64),
	}
}
