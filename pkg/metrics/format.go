package metrics

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a numeric value per the exposition-format rules.
// The precedence is fixed and order-sensitive:
//
//  1. nil renders as "0"
//  2. booleans render as "1"/"0"
//  3. strings spelling nan/inf (case-insensitive) render as the
//     canonical "NaN"/"+Inf"/"-Inf" tokens; other strings are parsed
//     as floats, falling back to "0"
//  4. float infinities and NaN render as the canonical tokens
//  5. finite floats with |v| > 1e21 or 0 < |v| < 1e-6 use scientific
//     notation with 16 significant digits
//  6. other floats use fixed notation with up to 16 significant digits,
//     trailing zeros and a trailing decimal point stripped
//  7. integers render as decimal strings
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "0"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case string:
		return formatStringValue(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return "0"
	}
}

// formatStringValue handles the special-token string spellings before
// falling back to numeric parsing.
func formatStringValue(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan":
		return "NaN"
	case "inf", "+inf", "infinity", "+infinity":
		return "+Inf"
	case "-inf", "-infinity":
		return "-Inf"
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "0"
	}
	return formatFloat(f)
}

// formatFloat renders a float per rules 4-6 of FormatValue.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs > 1e21 || abs < 1e-6 {
		// 16 significant digits: one leading digit plus 15 decimals.
		return strconv.FormatFloat(f, 'e', 15, 64)
	}

	// Fixed notation with 16 significant digits, then strip trailing
	// zeros and any dangling decimal point.
	intDigits := 1
	if abs >= 1 {
		intDigits = int(math.Floor(math.Log10(abs))) + 1
	}
	decimals := 16 - intDigits
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(f, 'f', decimals, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
