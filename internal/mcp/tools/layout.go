package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// GenerateLayoutInput is the input for artifact_generate_layout.
type GenerateLayoutInput struct {
	Data        any    `json:"data,omitempty" jsonschema:"Agent result as a JSON value. Either data or text is required."`
	Text        string `json:"text,omitempty" jsonschema:"Agent result as JSON or YAML text. Either data or text is required."`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content type of text, e.g. application/yaml (default: auto-detect)"`
	AgentType   string `json:"agent_type,omitempty" jsonschema:"Producing agent, e.g. forecaster or trend_analyst. Unknown or empty uses the generic layout."`
	Select      string `json:"select,omitempty" jsonschema:"jq expression applied before rendering, e.g. .result"`
}

// ToolGenerateLayout renders one agent result into a layout and caches it
// under its fingerprint.
func ToolGenerateLayout(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateLayoutInput) (*sdkmcp.CallToolResult, types.GenerateLayoutOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateLayoutInput) (*sdkmcp.CallToolResult, types.GenerateLayoutOutput, error) {
		data, err := resolvePayload(input.Data, input.Text, input.ContentType, d.Config.MaxPayloadBytes)
		if err != nil {
			return nil, types.GenerateLayoutOutput{}, err
		}
		data, err = selectPath(data, input.Select)
		if err != nil {
			return nil, types.GenerateLayoutOutput{}, err
		}

		a, cached := d.render(data, input.AgentType)
		layoutAny, err := types.ToAny(a.Layout)
		if err != nil {
			return nil, types.GenerateLayoutOutput{}, fmt.Errorf("serializing layout: %w", err)
		}

		return nil, types.GenerateLayoutOutput{
			Agent:       layout.ParseAgent(input.AgentType).String(),
			Status:      string(a.Status),
			Fingerprint: a.Fingerprint,
			Cached:      cached,
			Components:  kindNames(a.Layout),
			Layout:      layoutAny,
			Resource:    layoutRef(a),
		}, nil
	}
}
