package metrics

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// unitSuffixes are the recognized histogram unit suffixes. A histogram
// registered without one is accepted, but flagged.
var unitSuffixes = []string{
	"_seconds", "_milliseconds", "_bytes", "_ratio", "_percent",
	"_total", "_count", "_info",
}

// reservedLabelNames may only appear as labels synthesized by the
// renderer, never as declared label names.
var reservedLabelNames = []string{"le", "quantile"}

// Registry tracks one Descriptor per metric name in registration order.
// Re-registering a name under the same kind is idempotent and returns the
// existing descriptor; re-registering under a different kind is a hard
// error. Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// RegisterCounter registers a counter descriptor. The name is normalized
// and receives a "_total" suffix if absent (reported as an informational
// diagnostic, not an error).
func (r *Registry) RegisterCounter(name, help string, labelNames []string) (*Descriptor, []Diagnostic, error) {
	name, diags := ValidateMetricName(name)
	if !strings.HasSuffix(name, "_total") {
		suffixed := name + "_total"
		diags = append(diags, Diagnostic{
			Level:   DiagInfo,
			Message: "counter name missing '_total' suffix, appended",
			Context: map[string]any{"name": name, "normalized": suffixed},
		})
		name = suffixed
	}
	labels, d, err := r.validateDeclaredLabels(name, labelNames)
	diags = append(diags, d...)
	if err != nil {
		return nil, diags, err
	}
	desc, err := r.store(&Descriptor{Name: name, Help: help, Kind: KindCounter, LabelNames: labels})
	return desc, diags, err
}

// RegisterGauge registers a gauge descriptor.
func (r *Registry) RegisterGauge(name, help string, labelNames []string) (*Descriptor, []Diagnostic, error) {
	name, diags := ValidateMetricName(name)
	labels, d, err := r.validateDeclaredLabels(name, labelNames)
	diags = append(diags, d...)
	if err != nil {
		return nil, diags, err
	}
	desc, err := r.store(&Descriptor{Name: name, Help: help, Kind: KindGauge, LabelNames: labels})
	return desc, diags, err
}

// RegisterHistogram registers a histogram descriptor. Buckets are sorted,
// deduplicated and terminated with +Inf; an empty bucket list falls back
// to DefBuckets. A name without a recognized unit suffix is accepted with
// a warning. Declaring the reserved "le" label is a hard error.
func (r *Registry) RegisterHistogram(name, help string, labelNames []string, buckets []float64) (*Descriptor, []Diagnostic, error) {
	name, diags := ValidateMetricName(name)
	if !hasUnitSuffix(name) {
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "histogram name has no recognized unit suffix",
			Context: map[string]any{"name": name},
		})
	}
	labels, d, err := r.validateDeclaredLabels(name, labelNames)
	diags = append(diags, d...)
	if err != nil {
		return nil, diags, err
	}
	desc, err := r.store(&Descriptor{
		Name:       name,
		Help:       help,
		Kind:       KindHistogram,
		LabelNames: labels,
		Buckets:    NormalizeBuckets(buckets),
	})
	return desc, diags, err
}

// RegisterSummary registers a summary descriptor. Quantile configuration
// is retained for the contract; no estimation is performed. Declaring the
// reserved "quantile" label is a hard error.
func (r *Registry) RegisterSummary(name, help string, labelNames []string, quantiles map[float64]float64) (*Descriptor, []Diagnostic, error) {
	name, diags := ValidateMetricName(name)
	labels, d, err := r.validateDeclaredLabels(name, labelNames)
	diags = append(diags, d...)
	if err != nil {
		return nil, diags, err
	}
	var q map[float64]float64
	if len(quantiles) > 0 {
		q = make(map[float64]float64, len(quantiles))
		for k, v := range quantiles {
			q[k] = v
		}
	}
	desc, err := r.store(&Descriptor{
		Name:       name,
		Help:       help,
		Kind:       KindSummary,
		LabelNames: labels,
		Quantiles:  q,
	})
	return desc, diags, err
}

// Lookup returns the descriptor for name, or nil if never registered.
func (r *Registry) Lookup(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears all registered metadata. Used by the in-memory flush.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.byName = make(map[string]*Descriptor)
}

// store inserts the descriptor, enforcing idempotent same-kind
// re-registration and rejecting cross-kind collisions.
func (r *Registry) store(desc *Descriptor) (*Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[desc.Name]; ok {
		if existing.Kind != desc.Kind {
			return nil, newDriverError(desc.Name, ErrKindConflict)
		}
		return existing, nil
	}
	r.byName[desc.Name] = desc
	r.order = append(r.order, desc.Name)
	return desc, nil
}

// validateDeclaredLabels normalizes the declared label names and rejects
// protocol-reserved ones.
func (r *Registry) validateDeclaredLabels(metric string, labelNames []string) ([]string, []Diagnostic, error) {
	labels, diags := ValidateLabelNames(labelNames)
	for _, l := range labels {
		for _, reserved := range reservedLabelNames {
			if l == reserved {
				return nil, diags, newDriverError(metric, ErrReservedLabel)
			}
		}
	}
	return labels, diags, nil
}

// hasUnitSuffix reports whether name ends in a recognized unit suffix.
func hasUnitSuffix(name string) bool {
	for _, s := range unitSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// NormalizeBuckets sorts and deduplicates the upper bounds and guarantees
// a trailing +Inf bucket. An empty input falls back to DefBuckets. The
// input slice is not modified.
func NormalizeBuckets(buckets []float64) []float64 {
	if len(buckets) == 0 {
		buckets = DefBuckets
	}
	out := make([]float64, len(buckets))
	copy(out, buckets)
	sort.Float64s(out)
	dedup := out[:0]
	for i, b := range out {
		if i == 0 || b != dedup[len(dedup)-1] {
			dedup = append(dedup, b)
		}
	}
	if len(dedup) == 0 || !math.IsInf(dedup[len(dedup)-1], 1) {
		dedup = append(dedup, math.Inf(1))
	}
	return dedup
}
