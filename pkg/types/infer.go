package types

// InferSchemaOutput is the output type for the artifact_infer_schema tool.
type InferSchemaOutput struct {
	// Inferred schema: {type, fields, rowCount?, confidence}
	Schema any `json:"schema"`

	// JSON Schema export, present when requested
	JSONSchema any `json:"json_schema,omitempty"`

	Shape ShapeSummary `json:"shape"`

	// Per-sample validation against the inferred JSON Schema
	Samples []ValidationResult `json:"samples,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}

// ShapeSummary reports which layout strategy the data qualifies for.
type ShapeSummary struct {
	KeyValue     bool     `json:"key_value"`
	Tabular      bool     `json:"tabular"`
	TimeSeries   bool     `json:"time_series"`
	DateField    string   `json:"date_field,omitempty"`
	NumberFields []string `json:"number_fields,omitempty"`
	Strategy     string   `json:"strategy"`
}
