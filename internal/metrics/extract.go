package metrics

import (
	"strconv"
	"strings"
)

// ExtractNumber normalizes a heterogeneous scalar into a clean float.
// Numbers pass through; strings are stripped down to digits and decimal
// points before parsing ("$1,200,000" -> 1200000). Anything unparseable
// yields nil rather than an error - malformed input is treated as absent.
func ExtractNumber(value interface{}) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		return parseNumericString(v)
	default:
		return nil
	}
}

// parseNumericString strips every character that is not a digit or decimal
// point, then parses what remains.
func parseNumericString(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return nil
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}
