package infer

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/artifact-mcp/pkg/payload"
)

// Infer builds a schema for an arbitrary payload.
//
//   - nil yields an empty object schema with confidence 0.
//   - Arrays are inferred from up to SampleSize leading elements.
//   - Objects are inferred key by key with confidence 1.
//   - Scalars are wrapped as a single "value" field with confidence 1.
func Infer(v any) *Schema {
	if v == nil {
		return &Schema{Type: TypeObject, Fields: []Field{}, Confidence: 0}
	}

	switch val := v.(type) {
	case []any:
		return inferArray(val)
	case map[string]any:
		return inferObject(val)
	}

	return &Schema{
		Type:       TypeObject,
		Fields:     []Field{valueField(v)},
		Confidence: 1.0,
	}
}

func inferArray(arr []any) *Schema {
	rows := len(arr)
	if rows == 0 {
		return &Schema{Type: TypeArray, Fields: []Field{}, RowCount: &rows, Confidence: 0.5}
	}

	samples := arr[:min(SampleSize, rows)]

	if _, isObject := samples[0].(map[string]any); !isObject {
		return &Schema{
			Type:       TypeArray,
			Fields:     []Field{valueField(samples[0])},
			RowCount:   &rows,
			Confidence: 0.9,
		}
	}

	fields, presence := mergeSamples(samples)
	return &Schema{
		Type:       TypeArray,
		Fields:     fields,
		RowCount:   &rows,
		Confidence: confidence(presence, len(samples)),
	}
}

func inferObject(obj map[string]any) *Schema {
	fields := make([]Field, 0, len(obj))
	for _, key := range payload.SortedKeys(obj) {
		fields = append(fields, inferField(key, obj[key]))
	}
	return &Schema{Type: TypeObject, Fields: fields, Confidence: 1.0}
}

// valueField wraps a primitive as the synthetic "value" field.
func valueField(v any) Field {
	return Field{Key: "value", Type: primitiveType(v), Label: "Value"}
}

func inferField(key string, value any) Field {
	field := Field{
		Key:   key,
		Type:  typeOf(value),
		Label: Label(key),
	}

	switch field.Type {
	case TypeNumber:
		n, _ := payload.Float(value)
		field.Format = numberFormat(key, n)
	case TypeString:
		s, _ := payload.String(value)
		field.Format = stringFormat(key, s)
	case TypeArray:
		nested := inferArray(value.([]any))
		field.ItemType = TypeString
		if len(nested.Fields) > 0 {
			field.ItemType = nested.Fields[0].Type
		}
		field.ItemFields = nested.Fields
	case TypeObject:
		field.Fields = inferObject(value.(map[string]any)).Fields
	}

	return field
}

// mergeSamples unions the keys of every sampled object. The first
// occurrence of a key fixes its type and format. presence[i] holds the
// sample indices where field i was present and non-null.
func mergeSamples(samples []any) ([]Field, []*roaring.Bitmap) {
	var fields []Field
	var presence []*roaring.Bitmap
	index := make(map[string]int)

	for i, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range payload.SortedKeys(obj) {
			value := obj[key]
			pos, seen := index[key]
			if !seen {
				pos = len(fields)
				index[key] = pos
				fields = append(fields, inferField(key, value))
				presence = append(presence, roaring.New())
			}
			if value != nil {
				presence[pos].Add(uint32(i))
			}
		}
	}

	total := uint64(len(samples))
	for i := range fields {
		if presence[i].GetCardinality() < total {
			fields[i].Nullable = true
		}
	}

	if fields == nil {
		fields = []Field{}
	}
	return fields, presence
}

// confidence is the mean, across fields, of the fraction of samples in
// which the field was present and non-null.
func confidence(presence []*roaring.Bitmap, samples int) float64 {
	if samples == 0 || len(presence) == 0 {
		return 0
	}

	var total float64
	for _, bm := range presence {
		total += float64(bm.GetCardinality()) / float64(samples)
	}
	return total / float64(len(presence))
}

func typeOf(v any) Type {
	if v == nil {
		return TypeNull
	}
	switch v.(type) {
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	}
	if payload.IsTime(v) {
		return TypeDate
	}
	if payload.IsNumber(v) {
		return TypeNumber
	}
	return TypeString
}

// primitiveType is typeOf with containers collapsed to string.
func primitiveType(v any) Type {
	t := typeOf(v)
	if t == TypeArray || t == TypeObject {
		return TypeString
	}
	return t
}
