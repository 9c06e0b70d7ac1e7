package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// MemoryDriver is the reference in-memory storage backend. All data is
// lost when the process exits; Flush also clears the registry metadata
// so the engine returns to its initial state.
//
// MemoryDriver is thread-safe: an engine-wide sync.RWMutex guards the
// accumulator maps, rendering works from a snapshot taken under the read
// lock, and Flush holds the write lock for the duration of the clear.
type MemoryDriver struct {
	registry *Registry
	logger   *slog.Logger

	// now is injectable so unique-tracking date labels are testable.
	now func() time.Time

	// mu protects the accumulator maps below.
	mu         sync.RWMutex
	counters   map[string]map[string]uint64
	gauges     map[string]map[string]float64
	histograms map[string]map[string]*histogramAccumulator
	summaries  map[string]map[string]*summaryAccumulator
	unique     map[string]map[string]*uniqueSet
}

// histogramAccumulator is the mutable per-key histogram state. The
// bucket set is fixed at first observation.
type histogramAccumulator struct {
	count        uint64
	sum          float64
	buckets      []float64
	bucketCounts map[float64]uint64
}

// summaryAccumulator is the mutable per-key summary state. Raw values
// are retained in a bounded ring capped at summaryRetention.
type summaryAccumulator struct {
	count     uint64
	sum       float64
	values    []float64
	next      int
	quantiles map[float64]float64
}

// uniqueSet is the per-key unique-identifier state: the backing set plus
// a cached count so reads never walk the set.
type uniqueSet struct {
	seen  map[string]struct{}
	count uint64
}

// NewMemoryDriver creates the in-memory driver. A nil logger defaults to
// slog.Default tagged with the component name.
func NewMemoryDriver(logger *slog.Logger) *MemoryDriver {
	if logger == nil {
		logger = slog.Default().With("component", "metrics.memory")
	}
	return &MemoryDriver{
		registry:   NewRegistry(),
		logger:     logger,
		now:        time.Now,
		counters:   make(map[string]map[string]uint64),
		gauges:     make(map[string]map[string]float64),
		histograms: make(map[string]map[string]*histogramAccumulator),
		summaries:  make(map[string]map[string]*summaryAccumulator),
		unique:     make(map[string]map[string]*uniqueSet),
	}
}

// Registry exposes the driver's metric metadata registry.
func (m *MemoryDriver) Registry() *Registry {
	return m.registry
}

// RegisterCounter implements Driver.
func (m *MemoryDriver) RegisterCounter(name, help string, labelNames []string) (*Descriptor, error) {
	desc, diags, err := m.registry.RegisterCounter(name, help, labelNames)
	LogDiagnostics(m.logger, diags)
	return desc, err
}

// RegisterGauge implements Driver.
func (m *MemoryDriver) RegisterGauge(name, help string, labelNames []string) (*Descriptor, error) {
	desc, diags, err := m.registry.RegisterGauge(name, help, labelNames)
	LogDiagnostics(m.logger, diags)
	return desc, err
}

// RegisterHistogram implements Driver.
func (m *MemoryDriver) RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*Descriptor, error) {
	desc, diags, err := m.registry.RegisterHistogram(name, help, labelNames, buckets)
	LogDiagnostics(m.logger, diags)
	return desc, err
}

// RegisterSummary implements Driver.
func (m *MemoryDriver) RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*Descriptor, error) {
	desc, diags, err := m.registry.RegisterSummary(name, help, labelNames, quantiles)
	LogDiagnostics(m.logger, diags)
	return desc, err
}

// IncrementCounter implements Driver. The "_total" suffix is enforced on
// the storage key even when the call site omits it, matching
// registration-time normalization. A zero delta counts as one.
func (m *MemoryDriver) IncrementCounter(name string, labels Labels, delta uint64) {
	defer m.recoverOp("increment_counter", name)
	if delta == 0 {
		delta = 1
	}
	name, key := m.counterKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	group := m.counters[name]
	if group == nil {
		group = make(map[string]uint64)
		m.counters[name] = group
	}
	group[key] += delta
}

// ObserveHistogram implements Driver.
func (m *MemoryDriver) ObserveHistogram(name string, value float64, labels Labels, buckets []float64) {
	defer m.recoverOp("observe_histogram", name)
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	group := m.histograms[name]
	if group == nil {
		group = make(map[string]*histogramAccumulator)
		m.histograms[name] = group
	}
	acc := group[key]
	if acc == nil {
		acc = &histogramAccumulator{
			buckets:      m.bucketsFor(name, buckets),
			bucketCounts: make(map[float64]uint64),
		}
		group[key] = acc
	}
	acc.count++
	acc.sum += value
	for _, bound := range acc.buckets {
		if value <= bound {
			acc.bucketCounts[bound]++
			break
		}
	}
}

// SetGauge implements Driver.
func (m *MemoryDriver) SetGauge(name string, value float64, labels Labels) {
	defer m.recoverOp("set_gauge", name)
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gaugeGroup(name)[key] = value
}

// IncrementGauge implements Driver.
func (m *MemoryDriver) IncrementGauge(name string, delta float64, labels Labels) {
	defer m.recoverOp("increment_gauge", name)
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gaugeGroup(name)[key] += delta
}

// DecrementGauge implements Driver. Values are never clamped at zero.
func (m *MemoryDriver) DecrementGauge(name string, delta float64, labels Labels) {
	defer m.recoverOp("decrement_gauge", name)
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gaugeGroup(name)[key] -= delta
}

// ObserveSummary implements Driver.
func (m *MemoryDriver) ObserveSummary(name string, value float64, labels Labels, quantiles map[float64]float64) {
	defer m.recoverOp("observe_summary", name)
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()
	group := m.summaries[name]
	if group == nil {
		group = make(map[string]*summaryAccumulator)
		m.summaries[name] = group
	}
	acc := group[key]
	if acc == nil {
		acc = &summaryAccumulator{quantiles: m.quantilesFor(name, quantiles)}
		group[key] = acc
	}
	acc.count++
	acc.sum += value
	if len(acc.values) < summaryRetention {
		acc.values = append(acc.values, value)
	} else {
		acc.values[acc.next] = value
		acc.next = (acc.next + 1) % summaryRetention
	}
}

// TrackUnique implements Driver. Repeat identifiers for the same label
// combination and date are a no-op.
func (m *MemoryDriver) TrackUnique(name, identifier string, labels Labels) {
	defer m.recoverOp("track_unique", name)
	name = m.uniqueKeyName(name)
	key := m.labelKey(name, labels.With("date", m.now().Format("2006-01-02")))

	m.mu.Lock()
	defer m.mu.Unlock()
	group := m.unique[name]
	if group == nil {
		group = make(map[string]*uniqueSet)
		m.unique[name] = group
	}
	set := group[key]
	if set == nil {
		set = &uniqueSet{seen: make(map[string]struct{})}
		group[key] = set
	}
	if _, ok := set.seen[identifier]; ok {
		return
	}
	set.seen[identifier] = struct{}{}
	set.count++
}

// CounterValue implements Driver.
func (m *MemoryDriver) CounterValue(name string, labels Labels) uint64 {
	name, key := m.counterKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name][key]
}

// HistogramSum implements Driver.
func (m *MemoryDriver) HistogramSum(name string, labels Labels) float64 {
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc := m.histograms[name][key]; acc != nil {
		return acc.sum
	}
	return 0
}

// HistogramCount implements Driver.
func (m *MemoryDriver) HistogramCount(name string, labels Labels) uint64 {
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc := m.histograms[name][key]; acc != nil {
		return acc.count
	}
	return 0
}

// GaugeValue implements Driver.
func (m *MemoryDriver) GaugeValue(name string, labels Labels) float64 {
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[name][key]
}

// SummarySum implements Driver.
func (m *MemoryDriver) SummarySum(name string, labels Labels) float64 {
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc := m.summaries[name][key]; acc != nil {
		return acc.sum
	}
	return 0
}

// SummaryCount implements Driver.
func (m *MemoryDriver) SummaryCount(name string, labels Labels) uint64 {
	name = m.metricKeyName(name)
	key := m.labelKey(name, labels)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc := m.summaries[name][key]; acc != nil {
		return acc.count
	}
	return 0
}

// Metrics implements Driver.
func (m *MemoryDriver) Metrics() string {
	return RenderText(m.registry, m.Snapshot())
}

// Snapshot copies the current state under the read lock. Per-key state
// is internally consistent; cross-key consistency with writers racing
// after the snapshot began is not guaranteed and not required.
func (m *MemoryDriver) Snapshot() *Snapshot {
	snap := NewSnapshot()

	m.mu.RLock()
	defer m.mu.RUnlock()
	for name, group := range m.counters {
		dst := make(map[string]uint64, len(group))
		for k, v := range group {
			dst[k] = v
		}
		snap.Counters[name] = dst
	}
	for name, group := range m.gauges {
		dst := make(map[string]float64, len(group))
		for k, v := range group {
			dst[k] = v
		}
		snap.Gauges[name] = dst
	}
	for name, group := range m.histograms {
		dst := make(map[string]HistogramData, len(group))
		for k, acc := range group {
			counts := make(map[float64]uint64, len(acc.bucketCounts))
			for b, c := range acc.bucketCounts {
				counts[b] = c
			}
			dst[k] = HistogramData{
				Count:        acc.count,
				Sum:          acc.sum,
				Buckets:      acc.buckets,
				BucketCounts: counts,
			}
		}
		snap.Histograms[name] = dst
	}
	for name, group := range m.summaries {
		dst := make(map[string]SummaryData, len(group))
		for k, acc := range group {
			dst[k] = SummaryData{Count: acc.count, Sum: acc.sum}
		}
		snap.Summaries[name] = dst
	}
	for name, group := range m.unique {
		dst := make(map[string]uint64, len(group))
		for k, set := range group {
			dst[k] = set.count
		}
		snap.Unique[name] = dst
	}
	return snap
}

// Flush implements Driver. It clears every accumulator and the registry
// metadata, holding the write lock for the duration of the clear.
func (m *MemoryDriver) Flush() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("metrics flush failed", "panic", r)
			ok = false
		}
	}()

	m.mu.Lock()
	m.counters = make(map[string]map[string]uint64)
	m.gauges = make(map[string]map[string]float64)
	m.histograms = make(map[string]map[string]*histogramAccumulator)
	m.summaries = make(map[string]map[string]*summaryAccumulator)
	m.unique = make(map[string]map[string]*uniqueSet)
	m.mu.Unlock()

	m.registry.Reset()
	return true
}

// Close implements Driver. The in-memory backend holds no resources.
func (m *MemoryDriver) Close() error {
	return nil
}

// gaugeGroup returns the per-key map for a gauge, creating it on first
// use. Callers must hold the write lock.
func (m *MemoryDriver) gaugeGroup(name string) map[string]float64 {
	group := m.gauges[name]
	if group == nil {
		group = make(map[string]float64)
		m.gauges[name] = group
	}
	return group
}

// metricKeyName normalizes a metric name for key derivation, logging
// any corrections.
func (m *MemoryDriver) metricKeyName(name string) string {
	normalized, diags := ValidateMetricName(name)
	LogDiagnostics(m.logger, diags)
	return normalized
}

// counterKey normalizes the counter name (enforcing the "_total"
// suffix) and encodes the label key.
func (m *MemoryDriver) counterKey(name string, labels Labels) (string, string) {
	normalized, diags := CanonicalCounterName(name)
	LogDiagnostics(m.logger, diags)
	return normalized, m.labelKey(normalized, labels)
}

// uniqueKeyName normalizes a unique-tracking metric name.
func (m *MemoryDriver) uniqueKeyName(name string) string {
	normalized, diags := CanonicalUniqueName(name)
	LogDiagnostics(m.logger, diags)
	return normalized
}

// labelKey encodes labels, logging any name corrections.
func (m *MemoryDriver) labelKey(metric string, labels Labels) string {
	key, diags := GenerateLabelKey(labels)
	if len(diags) > 0 {
		LogDiagnostics(m.logger.With("metric", metric), diags)
	}
	return key
}

// bucketsFor resolves the bucket set for a first observation: registered
// buckets win, then the caller-supplied list, then DefBuckets.
func (m *MemoryDriver) bucketsFor(name string, override []float64) []float64 {
	if desc := m.registry.Lookup(name); desc != nil && desc.Kind == KindHistogram && len(desc.Buckets) > 0 {
		return desc.Buckets
	}
	return NormalizeBuckets(override)
}

// quantilesFor resolves the quantile configuration for a first summary
// observation.
func (m *MemoryDriver) quantilesFor(name string, override map[float64]float64) map[float64]float64 {
	if desc := m.registry.Lookup(name); desc != nil && desc.Kind == KindSummary && len(desc.Quantiles) > 0 {
		return desc.Quantiles
	}
	return override
}

// recoverOp converts a panicking mutator into a logged no-op so failures
// can never propagate into the caller's request-handling path.
func (m *MemoryDriver) recoverOp(op, metric string) {
	if r := recover(); r != nil {
		m.logger.Error("metrics operation failed",
			"op", op,
			"metric", metric,
			"panic", r,
		)
	}
}
