package tools

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/internal/schema"
	"github.com/usestring/artifact-mcp/pkg/payload"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// maxCommonErrors caps the aggregated error list.
const maxCommonErrors = 20

// ValidatePayloadInput is the input for artifact_validate_payload.
type ValidatePayloadInput struct {
	Data        any    `json:"data,omitempty" jsonschema:"Agent result as a JSON value. Either data or text is required."`
	Text        string `json:"text,omitempty" jsonschema:"Agent result as JSON or YAML text. Either data or text is required."`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content type of text (default: auto-detect)"`
	Select      string `json:"select,omitempty" jsonschema:"jq expression applied before validation"`
	Schema      string `json:"schema" jsonschema:"JSON Schema text the result must satisfy"`
	EachItem    bool   `json:"each_item,omitempty" jsonschema:"Validate every element of an array payload separately"`
}

// ValidatePayloadOutput is the output for artifact_validate_payload.
type ValidatePayloadOutput struct {
	Summary      ValidationSummary        `json:"summary"`
	Results      []types.ValidationResult `json:"results,omitzero"`
	CommonErrors []CommonError            `json:"common_errors,omitempty"`
}

// ValidationSummary summarizes the validation results.
type ValidationSummary struct {
	Total         int  `json:"total"`
	MatchingCount int  `json:"matching_count"`
	FailedCount   int  `json:"failed_count"`
	AllMatch      bool `json:"all_match"`
}

// CommonError represents a frequently occurring validation error.
type CommonError struct {
	Error     string `json:"error"`
	Frequency int    `json:"frequency"`
}

// ToolValidatePayload checks an agent result against a caller-supplied
// JSON Schema contract.
func ToolValidatePayload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidatePayloadInput) (*sdkmcp.CallToolResult, ValidatePayloadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidatePayloadInput) (*sdkmcp.CallToolResult, ValidatePayloadOutput, error) {
		if input.Schema == "" {
			return nil, ValidatePayloadOutput{}, ErrInvalidInput("schema is required")
		}
		validator, err := schema.CompileJSON([]byte(input.Schema))
		if err != nil {
			return nil, ValidatePayloadOutput{}, ErrInvalidInput("invalid schema: " + err.Error())
		}

		data, err := resolvePayload(input.Data, input.Text, input.ContentType, d.Config.MaxPayloadBytes)
		if err != nil {
			return nil, ValidatePayloadOutput{}, err
		}
		data, err = selectPath(data, input.Select)
		if err != nil {
			return nil, ValidatePayloadOutput{}, err
		}

		values := []any{data}
		if input.EachItem {
			items, ok := payload.Slice(data)
			if !ok {
				return nil, ValidatePayloadOutput{}, ErrInvalidInput("each_item requires an array payload")
			}
			if limit := d.Config.MaxBatchItems; limit > 0 && len(items) > limit {
				return nil, ValidatePayloadOutput{}, ErrInvalidInput(fmt.Sprintf("array has %d items, limit is %d", len(items), limit))
			}
			values = items
		}

		output := ValidatePayloadOutput{
			Summary: ValidationSummary{Total: len(values)},
			Results: make([]types.ValidationResult, 0, len(values)),
		}
		for _, v := range values {
			result := validator.ValidateValue(v)
			output.Results = append(output.Results, *result)
			if result.Valid {
				output.Summary.MatchingCount++
			} else {
				output.Summary.FailedCount++
			}
		}
		output.Summary.AllMatch = output.Summary.Total > 0 && output.Summary.FailedCount == 0

		if output.Summary.FailedCount > 0 && len(values) > 1 {
			output.CommonErrors = commonErrors(output.Results)
		}

		d.logger().Debug("validated payload",
			slog.Int("total", output.Summary.Total),
			slog.Int("failed", output.Summary.FailedCount),
		)
		return nil, output, nil
	}
}

// commonErrors counts identical messages across results, most frequent first.
func commonErrors(results []types.ValidationResult) []CommonError {
	counts := make(map[string]int)
	for _, r := range results {
		for _, e := range r.Errors {
			counts[e]++
		}
	}

	out := make([]CommonError, 0, len(counts))
	for e, n := range counts {
		out = append(out, CommonError{Error: e, Frequency: n})
	}
	slices.SortFunc(out, func(a, b CommonError) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Error, b.Error)
	})
	if len(out) > maxCommonErrors {
		out = out[:maxCommonErrors]
	}
	return out
}
