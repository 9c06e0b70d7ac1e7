package metrics

import (
	"regexp"
	"strings"
)

var (
	metricNameRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	labelNameRE  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	illegalMetricCharRE = regexp.MustCompile(`[^a-zA-Z0-9_:]`)
	illegalLabelCharRE  = regexp.MustCompile(`[^a-zA-Z0-9_]`)

	// datePatternRE detects metric names that embed a calendar date,
	// a common instrumentation mistake that explodes the metric namespace.
	datePatternRE = regexp.MustCompile(`20\d{2}[-_]?\d{2}[-_]?\d{2}`)
)

const (
	metricFallbackPrefix = "metric_"
	labelFallbackPrefix  = "label_"

	// reservedNameLabel is the fully reserved label spelling that both
	// starts and ends with the reserved double underscore.
	reservedNameLabel = "__name__"
)

// dashDotReplacer rewrites the two characters the exposition grammar most
// commonly trips over.
var dashDotReplacer = strings.NewReplacer("-", "_", ".", "_")

// ValidateMetricName normalizes raw into a valid exposition metric name.
// It never fails: malformed input is corrected best-effort and each
// correction is reported as a diagnostic for the caller to log.
//
// Corrections, in order: dashes and dots become underscores; remaining
// illegal characters become underscores; a fallback prefix is prepended if
// the result still does not start with a letter or underscore; colons are
// stripped except for a single leading namespace separator. Names that
// appear to embed a date are flagged with a warning but left unchanged.
func ValidateMetricName(raw string) (string, []Diagnostic) {
	var diags []Diagnostic

	name := dashDotReplacer.Replace(raw)
	if name != raw {
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "metric name contained '-' or '.', rewritten to '_'",
			Context: map[string]any{"raw": raw, "normalized": name},
		})
	}

	if !metricNameRE.MatchString(name) {
		cleaned := illegalMetricCharRE.ReplaceAllString(name, "_")
		if !metricNameRE.MatchString(cleaned) {
			cleaned = metricFallbackPrefix + cleaned
		}
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "metric name contained illegal characters, rewritten",
			Context: map[string]any{"raw": raw, "normalized": cleaned},
		})
		name = cleaned
	}

	// Colons are only permitted as a single leading namespace separator.
	if i := strings.IndexByte(name, ':'); i >= 0 && (i != 0 || strings.Count(name, ":") > 1) {
		leading := strings.HasPrefix(name, ":")
		fixed := strings.ReplaceAll(name, ":", "_")
		if leading {
			fixed = ":" + fixed[1:]
		}
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "metric name contained misplaced colons, rewritten to '_'",
			Context: map[string]any{"raw": raw, "normalized": fixed},
		})
		name = fixed
	}

	if datePatternRE.MatchString(name) {
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "metric name appears to embed a date, which multiplies the metric namespace over time",
			Context: map[string]any{"name": name},
		})
	}

	return name, diags
}

// ValidateLabelName normalizes raw into a valid label name. Like
// ValidateMetricName it never fails. Colons are not permitted in label
// names, and the double-underscore prefix is reserved for exposition
// internals: reserved-prefix names are rewritten with a fallback token,
// with the fully reserved "__name__" special-cased so the rewrite cannot
// collide with the reserved spelling.
func ValidateLabelName(raw string) (string, []Diagnostic) {
	var diags []Diagnostic

	name := dashDotReplacer.Replace(raw)
	if name != raw {
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "label name contained '-' or '.', rewritten to '_'",
			Context: map[string]any{"raw": raw, "normalized": name},
		})
	}

	if !labelNameRE.MatchString(name) {
		cleaned := illegalLabelCharRE.ReplaceAllString(name, "_")
		if !labelNameRE.MatchString(cleaned) {
			cleaned = labelFallbackPrefix + cleaned
		}
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "label name contained illegal characters, rewritten",
			Context: map[string]any{"raw": raw, "normalized": cleaned},
		})
		name = cleaned
	}

	if strings.HasPrefix(name, "__") {
		var fixed string
		if name == reservedNameLabel {
			fixed = "label_name"
		} else {
			fixed = labelFallbackPrefix + strings.TrimLeft(name, "_")
		}
		diags = append(diags, Diagnostic{
			Level:   DiagWarning,
			Message: "label name used the reserved '__' prefix, rewritten",
			Context: map[string]any{"raw": raw, "normalized": fixed},
		})
		name = fixed
	}

	return name, diags
}

// ValidateLabelNames normalizes every name in raw, preserving order.
func ValidateLabelNames(raw []string) ([]string, []Diagnostic) {
	if len(raw) == 0 {
		return nil, nil
	}
	names := make([]string, len(raw))
	var diags []Diagnostic
	for i, r := range raw {
		name, d := ValidateLabelName(r)
		names[i] = name
		diags = append(diags, d...)
	}
	return names, diags
}
