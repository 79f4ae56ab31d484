package infer

import (
	"github.com/invopop/jsonschema"
)

// FormatExtension is the JSON Schema keyword carrying display hints that
// have no standard "format" equivalent (currency, percentage, ...).
const FormatExtension = "x-display-format"

// ToJSONSchema renders an inferred schema as JSON Schema (Draft 2020-12),
// for clients that validate or document agent payloads.
func ToJSONSchema(s *Schema) *jsonschema.Schema {
	if s == nil {
		return &jsonschema.Schema{}
	}

	object := objectSchema(s.Fields)
	if s.Type != TypeArray {
		object.Version = jsonschema.Version
		return object
	}

	items := object
	if isPrimitiveItem(s.Fields) {
		items = fieldSchema(s.Fields[0])
	}
	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Type:    "array",
		Items:   items,
	}
}

// isPrimitiveItem reports whether fields is the single synthetic "value"
// field produced for arrays of primitives.
func isPrimitiveItem(fields []Field) bool {
	return len(fields) == 1 && fields[0].Key == "value" && fields[0].Label == "Value" &&
		fields[0].Type != TypeObject && fields[0].Type != TypeArray
}

func objectSchema(fields []Field) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, f := range fields {
		schema.Properties.Set(f.Key, fieldSchema(f))
		if !f.Nullable {
			schema.Required = append(schema.Required, f.Key)
		}
	}
	return schema
}

func fieldSchema(f Field) *jsonschema.Schema {
	schema := &jsonschema.Schema{Title: f.Label}

	switch f.Type {
	case TypeNumber:
		schema.Type = "number"
		if f.Format == FormatInteger {
			schema.Type = "integer"
		}
	case TypeDate:
		schema.Type = "string"
		schema.Format = "date-time"
	case TypeArray:
		schema.Type = "array"
		switch {
		case isPrimitiveItem(f.ItemFields):
			schema.Items = fieldSchema(f.ItemFields[0])
		case len(f.ItemFields) > 0:
			schema.Items = objectSchema(f.ItemFields)
		}
	case TypeObject:
		nested := objectSchema(f.Fields)
		nested.Title = f.Label
		return nested
	default:
		schema.Type = string(f.Type)
	}

	switch f.Format {
	case FormatDate:
		schema.Format = "date"
	case FormatDateTime:
		schema.Format = "date-time"
	case FormatCurrency, FormatPercentage, FormatDecimal:
		schema.Extras = map[string]any{FormatExtension: string(f.Format)}
	}

	if f.Nullable && schema.Type != "" && schema.Type != "null" {
		// invopop has no multi-type field, so nullable fields are widened.
		return &jsonschema.Schema{
			Title: f.Label,
			AnyOf: []*jsonschema.Schema{schema, {Type: "null"}},
		}
	}
	return schema
}
