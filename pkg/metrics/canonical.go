package metrics

import "strings"

// CanonicalCounterName normalizes a counter name and enforces the
// "_total" suffix. Storage backends use it so a caller omitting the
// suffix at the call site still lands on the registration-time key.
func CanonicalCounterName(name string) (string, []Diagnostic) {
	normalized, diags := ValidateMetricName(name)
	if !strings.HasSuffix(normalized, "_total") {
		normalized += "_total"
	}
	return normalized, diags
}

// CanonicalUniqueName normalizes a unique-tracking metric name,
// enforcing the "unique_" prefix and "_total" suffix regardless of
// caller input.
func CanonicalUniqueName(name string) (string, []Diagnostic) {
	normalized, diags := ValidateMetricName(name)
	if !strings.HasPrefix(normalized, "unique_") {
		normalized = "unique_" + normalized
	}
	if !strings.HasSuffix(normalized, "_total") {
		normalized += "_total"
	}
	return normalized, diags
}
