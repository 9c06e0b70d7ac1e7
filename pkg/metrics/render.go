package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ExpositionContentType is the content type of the rendered body. The
// HTTP layer appends the charset parameter.
const ExpositionContentType = "text/plain; version=0.0.4"

// RenderText renders the full exposition text body from a registry and a
// state snapshot. Descriptors render in registration order, followed by
// any data stored without a descriptor; label combinations within a
// metric render in lexicographic key order so output is deterministic.
// Every line is newline-terminated, including the last.
//
// Rendering is a pure read-only projection. Any failure during the walk
// degrades the entire response to a single error comment line: scrapers
// expect either complete valid output or a clearly erroring comment,
// never a partial body.
func RenderText(reg *Registry, snap *Snapshot) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("# Error generating metrics: %v\n", r)
		}
	}()

	var b strings.Builder
	registered := make(map[string]bool)
	for _, desc := range reg.Descriptors() {
		registered[desc.Name] = true
		switch desc.Kind {
		case KindCounter:
			renderSingleValue(&b, desc, snap.Counters[desc.Name])
		case KindGauge:
			renderGauge(&b, desc, snap.Gauges[desc.Name])
		case KindHistogram:
			renderHistogram(&b, desc, snap.Histograms[desc.Name])
		case KindSummary:
			renderSummary(&b, desc, snap.Summaries[desc.Name])
		}
	}
	renderUnregistered(&b, snap, registered)
	renderUnique(&b, snap.Unique)
	return b.String()
}

// renderUnregistered emits samples stored without a registered
// descriptor, so observed data never vanishes from a scrape just
// because registration was skipped. The kind comes from the storage
// group; there is no HELP text to invent, so none is emitted.
func renderUnregistered(b *strings.Builder, snap *Snapshot, registered map[string]bool) {
	for _, name := range unregisteredNames(snap.Counters, registered) {
		renderSingleValue(b, &Descriptor{Name: name, Kind: KindCounter}, snap.Counters[name])
	}
	for _, name := range unregisteredNames(snap.Gauges, registered) {
		renderGauge(b, &Descriptor{Name: name, Kind: KindGauge}, snap.Gauges[name])
	}
	for _, name := range unregisteredNames(snap.Histograms, registered) {
		renderHistogram(b, &Descriptor{Name: name, Kind: KindHistogram}, snap.Histograms[name])
	}
	for _, name := range unregisteredNames(snap.Summaries, registered) {
		renderSummary(b, &Descriptor{Name: name, Kind: KindSummary}, snap.Summaries[name])
	}
}

// unregisteredNames returns the names in a storage group that carry
// samples but no descriptor, sorted for deterministic output.
func unregisteredNames[V any](group map[string]map[string]V, registered map[string]bool) []string {
	var names []string
	for name, samples := range group {
		if !registered[name] && len(samples) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// writeHeader emits the HELP and TYPE comment lines for a metric.
// Empty help (unregistered metrics) emits the TYPE line only.
func writeHeader(b *strings.Builder, name, help string, kind Kind) {
	if help != "" {
		b.WriteString("# HELP ")
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(escapeHelp(help))
		b.WriteByte('\n')
	}
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(kind.String())
	b.WriteByte('\n')
}

// renderSingleValue emits counter lines. A registered counter with no
// stored samples still emits a single zero-valued line with no labels.
func renderSingleValue(b *strings.Builder, desc *Descriptor, samples map[string]uint64) {
	writeHeader(b, desc.Name, desc.Help, desc.Kind)
	if len(samples) == 0 {
		b.WriteString(desc.Name)
		b.WriteString(" 0\n")
		return
	}
	for _, key := range sortedSampleKeys(samples) {
		b.WriteString(desc.Name)
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(samples[key]))
		b.WriteByte('\n')
	}
}

// renderGauge emits gauge lines, following the counter shape: a
// registered gauge that was never set emits one zero-valued line.
func renderGauge(b *strings.Builder, desc *Descriptor, samples map[string]float64) {
	writeHeader(b, desc.Name, desc.Help, desc.Kind)
	if len(samples) == 0 {
		b.WriteString(desc.Name)
		b.WriteString(" 0\n")
		return
	}
	for _, key := range sortedSampleKeys(samples) {
		b.WriteString(desc.Name)
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(samples[key]))
		b.WriteByte('\n')
	}
}

// renderHistogram emits cumulative _bucket lines plus _sum and _count for
// every label combination. Bucket occurrence counts are accumulated into
// a running sum; the terminating +Inf line always equals the total
// observation count and is emitted exactly once.
func renderHistogram(b *strings.Builder, desc *Descriptor, samples map[string]HistogramData) {
	writeHeader(b, desc.Name, desc.Help, desc.Kind)
	for _, key := range sortedSampleKeys(samples) {
		h := samples[key]
		var cumulative uint64
		for _, bound := range h.Buckets {
			if math.IsInf(bound, 1) {
				continue
			}
			cumulative += h.BucketCounts[bound]
			b.WriteString(desc.Name)
			b.WriteString("_bucket")
			b.WriteString(bucketKey(key, formatFloat(bound)))
			b.WriteByte(' ')
			b.WriteString(FormatValue(cumulative))
			b.WriteByte('\n')
		}
		b.WriteString(desc.Name)
		b.WriteString("_bucket")
		b.WriteString(bucketKey(key, "+Inf"))
		b.WriteByte(' ')
		b.WriteString(FormatValue(h.Count))
		b.WriteByte('\n')

		b.WriteString(desc.Name)
		b.WriteString("_sum")
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(h.Sum))
		b.WriteByte('\n')
		b.WriteString(desc.Name)
		b.WriteString("_count")
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(h.Count))
		b.WriteByte('\n')
	}
}

// renderSummary emits _sum and _count lines per label combination.
// Quantile lines are not emitted: quantile estimation is out of scope
// and only sum/count are reliable.
func renderSummary(b *strings.Builder, desc *Descriptor, samples map[string]SummaryData) {
	writeHeader(b, desc.Name, desc.Help, desc.Kind)
	for _, key := range sortedSampleKeys(samples) {
		s := samples[key]
		b.WriteString(desc.Name)
		b.WriteString("_sum")
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(s.Sum))
		b.WriteByte('\n')
		b.WriteString(desc.Name)
		b.WriteString("_count")
		b.WriteString(key)
		b.WriteByte(' ')
		b.WriteString(FormatValue(s.Count))
		b.WriteByte('\n')
	}
}

// renderUnique emits the unique-tracking counter group. Unique metrics
// are not registry entries; the HELP text is derived from the name.
func renderUnique(b *strings.Builder, unique map[string]map[string]uint64) {
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		base := strings.TrimSuffix(strings.TrimPrefix(name, "unique_"), "_total")
		writeHeader(b, name, fmt.Sprintf("Number of unique %s per day", base), KindCounter)
		samples := unique[name]
		for _, key := range sortedSampleKeys(samples) {
			b.WriteString(name)
			b.WriteString(key)
			b.WriteByte(' ')
			b.WriteString(FormatValue(samples[key]))
			b.WriteByte('\n')
		}
	}
}

// bucketKey merges the synthesized le label into an encoded label key.
func bucketKey(labelKey, bound string) string {
	if labelKey == "" {
		return `{le="` + bound + `"}`
	}
	return labelKey[:len(labelKey)-1] + `,le="` + bound + `"}`
}

// escapeHelp escapes backslashes and line feeds so HELP text cannot
// break the line grammar.
func escapeHelp(help string) string {
	if !strings.ContainsAny(help, "\\\n") {
		return help
	}
	help = strings.ReplaceAll(help, `\`, `\\`)
	return strings.ReplaceAll(help, "\n", `\n`)
}

// sortedSampleKeys returns map keys in lexicographic order.
func sortedSampleKeys[V any](samples map[string]V) []string {
	keys := make([]string, 0, len(samples))
	for k := range samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
