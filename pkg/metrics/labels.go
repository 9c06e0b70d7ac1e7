package metrics

import (
	"sort"
	"strings"
)

// Label is a single name/value dimension attached to an observation.
type Label struct {
	Name  string
	Value string
}

// Labels is an ordered label set. Order matters: the canonical key
// encoding serializes labels in the order supplied by the caller, so the
// same labels in the same order always produce the identical storage key.
type Labels []Label

// L is a convenience constructor for a single label.
func L(name, value string) Label {
	return Label{Name: name, Value: value}
}

// LabelsFromMap builds an ordered label set from a map. Map iteration
// order is randomized in Go, so the keys are sorted to keep the encoding
// order-stable for map-based callers.
func LabelsFromMap(m map[string]string) Labels {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	labels := make(Labels, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, Label{Name: k, Value: m[k]})
	}
	return labels
}

// Get returns the value for name and whether it is present.
func (ls Labels) Get(name string) (string, bool) {
	for _, l := range ls {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}

// With returns a copy of the label set with an additional label appended.
// The receiver is not modified.
func (ls Labels) With(name, value string) Labels {
	out := make(Labels, len(ls), len(ls)+1)
	copy(out, ls)
	return append(out, Label{Name: name, Value: value})
}

// GenerateLabelKey serializes a label set into its canonical key fragment:
// an empty set encodes to the empty string, a non-empty set to
// {name1="value1",name2="value2"} in caller order. Each label name is
// re-validated on the way through (a no-op for already-normalized names)
// and values are backslash-escaped.
func GenerateLabelKey(labels Labels) (string, []Diagnostic) {
	if len(labels) == 0 {
		return "", nil
	}
	var diags []Diagnostic
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range labels {
		name, d := ValidateLabelName(l.Name)
		diags = append(diags, d...)
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeLabelValue(l.Value))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), diags
}

// escapeLabelValue escapes the characters the exposition format requires.
// Backslash must be escaped first to avoid double-escaping the others.
func escapeLabelValue(v string) string {
	if !strings.ContainsAny(v, "\\\"\n\r") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	v = strings.ReplaceAll(v, "\n", `\n`)
	v = strings.ReplaceAll(v, "\r", `\r`)
	return v
}
