package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/internal/schema"
	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// maxSamples caps how many samples one call validates.
const maxSamples = 50

// InferSchemaInput is the input for artifact_infer_schema.
type InferSchemaInput struct {
	Data              any      `json:"data,omitempty" jsonschema:"Agent result as a JSON value. Either data or text is required."`
	Text              string   `json:"text,omitempty" jsonschema:"Agent result as JSON or YAML text. Either data or text is required."`
	ContentType       string   `json:"content_type,omitempty" jsonschema:"Content type of text, e.g. application/yaml (default: auto-detect)"`
	Select            string   `json:"select,omitempty" jsonschema:"jq expression applied before inference, e.g. .forecasts.sales"`
	IncludeJSONSchema bool     `json:"include_json_schema,omitempty" jsonschema:"Also return the schema as JSON Schema (draft 2020-12)"`
	Samples           []string `json:"samples,omitempty" jsonschema:"JSON texts to validate against the inferred schema (max 50)"`
}

// ToolInferSchema infers a display schema from one payload and reports
// which layout strategy it qualifies for. Optional samples are validated
// against the JSON Schema export of the result.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if len(input.Samples) > maxSamples {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("at most %d samples are accepted", maxSamples))
		}

		data, err := resolvePayload(input.Data, input.Text, input.ContentType, d.Config.MaxPayloadBytes)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}
		data, err = selectPath(data, input.Select)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}

		inferred := infer.Infer(data)
		schemaAny, err := types.ToAny(inferred)
		if err != nil {
			return nil, types.InferSchemaOutput{}, fmt.Errorf("serializing schema: %w", err)
		}

		output := types.InferSchemaOutput{
			Schema: schemaAny,
			Shape:  shapeOf(data, inferred),
		}

		if input.IncludeJSONSchema || len(input.Samples) > 0 {
			exported := infer.ToJSONSchema(inferred)
			if input.IncludeJSONSchema {
				if output.JSONSchema, err = types.ToAny(exported); err != nil {
					return nil, types.InferSchemaOutput{}, fmt.Errorf("serializing JSON Schema: %w", err)
				}
			}
			if len(input.Samples) > 0 {
				validator, err := schema.Compile(exported)
				if err != nil {
					return nil, types.InferSchemaOutput{}, fmt.Errorf("compiling inferred schema: %w", err)
				}
				output.Samples = make([]types.ValidationResult, 0, len(input.Samples))
				for _, sample := range input.Samples {
					output.Samples = append(output.Samples, *validator.Validate([]byte(sample)))
				}
			}
		}

		output.Hint = "Use artifact_generate_layout with the same data to render it."
		if output.Shape.Strategy == "json" {
			output.Hint = "This shape renders as a raw JSON viewer. Pass select to narrow it to an object or an array of objects."
		}

		return nil, output, nil
	}
}

func shapeOf(data any, s *infer.Schema) types.ShapeSummary {
	shape := types.ShapeSummary{
		KeyValue:   infer.IsKeyValue(data),
		Tabular:    infer.IsTabular(data),
		TimeSeries: infer.IsTimeSeries(s),
		Strategy:   layout.Strategy(data, ""),
	}
	if f, ok := infer.DateField(s); ok {
		shape.DateField = f.Key
	}
	for _, f := range infer.NumberFields(s) {
		shape.NumberFields = append(shape.NumberFields, f.Key)
	}
	return shape
}
