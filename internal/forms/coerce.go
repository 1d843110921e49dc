package forms

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// parseLeadingInt reads an optionally signed run of decimal digits after any
// leading whitespace and ignores whatever follows ("12 years" is 12). It
// reports false when no digits are found. Out-of-range values saturate.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+s[:end], 10, 0)
	if errors.Is(err, strconv.ErrRange) {
		if sign == "-" {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(n), err == nil
}

// textLength counts UTF-16 code units, the length browsers report for form input.
// Characters outside the Basic Multilingual Plane count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// splitList splits on commas, trims each token and drops empty ones.
func splitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []Record:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	default:
		return nil, false
	}
}

// typeName names a value's shape the way form clients see it.
func typeName(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if math.IsNaN(n) {
			return "nan"
		}
		return "number"
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any, []string, []map[string]any, []Record:
		return "array"
	case map[string]any, Record:
		return "object"
	default:
		return "unknown"
	}
}
