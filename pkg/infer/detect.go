package infer

import "github.com/usestring/artifact-mcp/pkg/payload"

// IsKeyValue reports whether v is a small flat object suitable for a
// metrics grid: between 1 and KeyValueMaxEntries entries, more than
// KeyValuePrimitiveShare of them scalar.
func IsKeyValue(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	n := len(obj)
	if n == 0 || n > KeyValueMaxEntries {
		return false
	}

	scalars := 0
	for _, item := range obj {
		if payload.IsScalar(item) {
			scalars++
		}
	}
	return float64(scalars)/float64(n) > KeyValuePrimitiveShare
}

// IsTabular reports whether v is an array of objects that share keys.
// Every sampled element after the first must be an object with the same
// key count as the first, and at least TabularKeyOverlap of its keys must
// appear in the first element.
func IsTabular(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return false
	}

	limit := min(len(arr), SampleSize)
	for _, item := range arr[1:limit] {
		row, ok := item.(map[string]any)
		if !ok || len(row) != len(first) {
			return false
		}
		if len(first) == 0 {
			continue
		}
		matching := 0
		for key := range row {
			if _, shared := first[key]; shared {
				matching++
			}
		}
		if float64(matching)/float64(len(first)) < TabularKeyOverlap {
			return false
		}
	}
	return true
}

// IsTimeSeries reports whether an array schema carries at least one
// date-like field and at least one numeric field.
func IsTimeSeries(s *Schema) bool {
	if s == nil || s.Type != TypeArray {
		return false
	}

	var hasDate, hasNumber bool
	for _, f := range s.Fields {
		if f.IsDateLike() {
			hasDate = true
		}
		if f.Type == TypeNumber {
			hasNumber = true
		}
	}
	return hasDate && hasNumber
}

// DateField returns the first date-like field of s.
func DateField(s *Schema) (Field, bool) {
	for _, f := range s.Fields {
		if f.IsDateLike() {
			return f, true
		}
	}
	return Field{}, false
}

// NumberFields returns the numeric fields of s in field order.
func NumberFields(s *Schema) []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Type == TypeNumber {
			out = append(out, f)
		}
	}
	return out
}
