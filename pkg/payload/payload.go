// Package payload provides total accessors over loosely-typed JSON values.
//
// Agent results arrive as the untyped trees produced by encoding/json
// (map[string]any, []any, float64, string, bool, nil). Every helper in this
// package tolerates missing keys and mismatched types: lookups report absence
// through a second boolean result instead of panicking.
package payload

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"
)

// Get walks nested objects along path and returns the value found.
// The boolean is false if any segment is missing or a non-object is hit.
// A present key holding null returns (nil, true).
func Get(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, exists := obj[key]
		if !exists {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Float converts any numeric kind to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumber reports whether v is a numeric kind.
func IsNumber(v any) bool {
	_, ok := Float(v)
	return ok
}

// String returns v if it is a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Map returns v if it is a JSON object.
func Map(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice returns v if it is a JSON array.
func Slice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// IsTime reports whether v is a time.Time value.
func IsTime(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}

// IsScalar reports whether v is null or a non-container value.
func IsScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

// FloatAt looks up path and converts the result to float64.
func FloatAt(v any, path ...string) (float64, bool) {
	raw, ok := Get(v, path...)
	if !ok {
		return 0, false
	}
	return Float(raw)
}

// FloatOr returns the number at path, or def when absent or non-numeric.
func FloatOr(v any, def float64, path ...string) float64 {
	if f, ok := FloatAt(v, path...); ok {
		return f
	}
	return def
}

// StringAt looks up path and returns it if it is a string.
func StringAt(v any, path ...string) (string, bool) {
	raw, ok := Get(v, path...)
	if !ok {
		return "", false
	}
	return String(raw)
}

// StringOr returns the non-empty string at path, or def.
func StringOr(v any, def string, path ...string) string {
	if s, ok := StringAt(v, path...); ok && s != "" {
		return s
	}
	return def
}

// MapAt looks up path and returns it if it is an object.
func MapAt(v any, path ...string) (map[string]any, bool) {
	raw, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	return Map(raw)
}

// SliceAt looks up path and returns it if it is an array.
func SliceAt(v any, path ...string) ([]any, bool) {
	raw, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	return Slice(raw)
}

// SortedKeys returns the keys of m in ascending order.
// Go maps carry no insertion order, so every traversal that feeds output
// goes through this to stay deterministic.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truthy mirrors JavaScript truthiness for JSON values.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	if f, ok := Float(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Text renders a scalar the way a plain string coercion would.
// Containers are rendered as compact JSON.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
