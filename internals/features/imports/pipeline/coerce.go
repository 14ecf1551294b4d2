package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel tokens that count as "no value", compared case-insensitively.
// Mirrors the NA tokens the upload format has always accepted.
var absentTokens = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"none": {},
	"nan":  {},
	"null": {},
}

// IsAbsentString reports whether a raw cell should be treated as missing.
func IsAbsentString(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	_, hit := absentTokens[strings.ToLower(s)]
	return hit
}

// Coerce maps a raw cell to its typed form:
//   - absent  → nil
//   - integral numeric → int64
//   - other numeric    → float64
//   - anything else    → trimmed string
//
// Absent is nil, never "", so downstream code can tell blank from empty
// string content.
func Coerce(raw string) any {
	s := strings.TrimSpace(raw)
	if IsAbsentString(s) {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return FoldNumber(f)
	}
	return s
}

// FoldNumber collapses a whole-valued float to int64 so JSON shows 90, not 90.0.
func FoldNumber(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return int64(f)
	}
	return f
}

// CoerceScore parses a score cell leniently: unparsable or absent is 0.
// The pipeline never rejects a row over a bad score.
func CoerceScore(raw string) float64 {
	s := strings.TrimSpace(raw)
	if IsAbsentString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// IsAbsentValue extends the absent check to already-coerced values.
func IsAbsentValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return IsAbsentString(t)
	}
	return false
}

// Stringify renders a coerced value for display. Whole floats drop their
// decimal part; everything else goes through strconv.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		if folded, ok := FoldNumber(t).(int64); ok {
			return strconv.FormatInt(folded, 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}
