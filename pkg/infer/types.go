// Package infer guesses the structure of untyped agent payloads.
//
// It inspects a JSON-like value with no prior knowledge of its shape and
// reports field types, display-format hints and a confidence score. The
// predicates IsKeyValue, IsTabular and IsTimeSeries classify payload shapes
// for the layout generator.
package infer

// Type is the inferred kind of a value.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeDate    Type = "date"
	TypeNull    Type = "null"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Format is a display hint for string and number fields.
type Format string

const (
	FormatNone       Format = ""
	FormatCurrency   Format = "currency"
	FormatPercentage Format = "percentage"
	FormatInteger    Format = "integer"
	FormatDecimal    Format = "decimal"
	FormatDate       Format = "date"
	FormatDateTime   Format = "datetime"
)

// Heuristic thresholds. They are kept at their historical values for
// compatibility with existing dashboards.
const (
	SampleSize             = 10  // array elements inspected during inference
	TabularKeyOverlap      = 0.7 // min share of a row's keys found in the first row
	KeyValueMaxEntries     = 20  // objects with more entries are not key-value
	KeyValuePrimitiveShare = 0.7 // share of scalar values must exceed this
	CurrencyValueThreshold = 100 // "amount"/"value" keys are currency above this
	PercentScoreCeiling    = 100 // "score" keys are percentages at or below this
)

// Field describes one key of an object or the element type of an array.
type Field struct {
	Key      string `json:"key"`
	Type     Type   `json:"type"`
	Format   Format `json:"format,omitempty"`
	Label    string `json:"label"`
	Nullable bool   `json:"nullable,omitempty"`

	// Arrays
	ItemType   Type    `json:"item_type,omitempty"`
	ItemFields []Field `json:"item_fields,omitempty"`

	// Objects
	Fields []Field `json:"fields,omitempty"`
}

// Schema is the root-level inference result.
type Schema struct {
	Type       Type    `json:"type"` // object or array
	Fields     []Field `json:"fields"`
	RowCount   *int    `json:"row_count,omitempty"` // array length, arrays only
	Confidence float64 `json:"confidence"`          // 0.0-1.0
}

// Field returns the field with the given key.
func (s *Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// IsDateLike reports whether the field holds dates or timestamps.
func (f Field) IsDateLike() bool {
	return f.Type == TypeDate || f.Format == FormatDate || f.Format == FormatDateTime
}
