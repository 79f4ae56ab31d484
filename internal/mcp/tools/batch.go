package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// BatchItem is one payload of a render batch.
type BatchItem struct {
	AgentType string `json:"agent_type,omitempty" jsonschema:"Producing agent (default: generic layout)"`
	Data      any    `json:"data,omitempty" jsonschema:"Agent result as a JSON value"`
	Text      string `json:"text,omitempty" jsonschema:"Agent result as JSON or YAML text"`
}

// RenderBatchInput is the input for artifact_render_batch.
type RenderBatchInput struct {
	Items   []BatchItem `json:"items" jsonschema:"Agent results to render, in display order"`
	Workers int         `json:"workers,omitempty" jsonschema:"Max concurrent renders (default: RENDER_WORKERS)"`
}

// ToolRenderBatch renders many agent results concurrently, keeping input
// order. Every artifact is cached for the layout resource.
func ToolRenderBatch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderBatchInput) (*sdkmcp.CallToolResult, types.RenderBatchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderBatchInput) (*sdkmcp.CallToolResult, types.RenderBatchOutput, error) {
		if len(input.Items) == 0 {
			return nil, types.RenderBatchOutput{}, ErrInvalidInput("items is required")
		}
		if limit := d.Config.MaxBatchItems; limit > 0 && len(input.Items) > limit {
			return nil, types.RenderBatchOutput{}, ErrInvalidInput(fmt.Sprintf("at most %d items are accepted, got %d", limit, len(input.Items)))
		}

		items := make([]artifact.Item, len(input.Items))
		for i, in := range input.Items {
			data, err := resolvePayload(in.Data, in.Text, "", d.Config.MaxPayloadBytes)
			if err != nil {
				return nil, types.RenderBatchOutput{}, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = artifact.Item{Agent: in.AgentType, Data: data}
		}

		renderer := d.Renderer
		if renderer == nil {
			renderer = artifact.NewRenderer(nil, d.logger())
		}
		rendered, err := renderer.RenderAll(ctx, items, d.workers(input.Workers))
		if err != nil {
			return nil, types.RenderBatchOutput{}, err
		}

		output := types.RenderBatchOutput{
			Artifacts: make([]types.BatchArtifact, 0, len(rendered)),
			Summary:   types.BatchSummary{Total: len(rendered)},
		}
		for i, a := range rendered {
			if d.Cache != nil {
				d.Cache.Put(a)
			}
			switch a.Status {
			case artifact.StatusOK:
				output.Summary.OK++
			case artifact.StatusFailed:
				output.Summary.Failed++
			case artifact.StatusEmpty:
				output.Summary.Empty++
			}

			layoutAny, err := types.ToAny(a.Layout)
			if err != nil {
				return nil, types.RenderBatchOutput{}, fmt.Errorf("serializing layout %d: %w", i, err)
			}
			output.Artifacts = append(output.Artifacts, types.BatchArtifact{
				Index:       i,
				Agent:       layout.ParseAgent(a.Agent).String(),
				Status:      string(a.Status),
				Fingerprint: a.Fingerprint,
				Layout:      layoutAny,
			})
		}

		return nil, output, nil
	}
}
