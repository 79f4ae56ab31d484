package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/pkg/layout"
)

// HandleVisualizeAgentResult implements the visualization workflow.
func HandleVisualizeAgentResult(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var agentType, goal string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			agentType = req.Params.Arguments["agent_type"]
			goal = req.Params.Arguments["goal"]
		}
		agent := layout.ParseAgent(agentType)

		var sb strings.Builder

		sb.WriteString("# Visualize an Agent Result\n\n")
		sb.WriteString("You turn raw agent output into a dashboard layout. ")
		sb.WriteString("The server decides the components; your job is to pick the right payload and explain the result.\n\n")
		if goal != "" {
			fmt.Fprintf(&sb, "**Reader goal**: %s\n\n", goal)
		}

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Inspect the shape** with `artifact_infer_schema(data=...)`\n")
		sb.WriteString("   - `shape.strategy` tells you the generic route: key_value, tabular, nested or json\n")
		sb.WriteString("   - If the strategy is `json`, narrow the payload with `select` (a jq expression) and try again\n")
		sb.WriteString("2. **Render** with `artifact_generate_layout(data=..., agent_type=...)`\n")
		sb.WriteString("   - Payloads with a non-empty `error` string render an Execution Failed alert\n")
		sb.WriteString("   - Empty objects or arrays render a No Data alert\n")
		if cfg.CacheEnabled {
			sb.WriteString("3. **Reuse** the layout by reading `resource.uri` (artifact://layout/{fingerprint}) instead of re-sending the payload\n")
		}
		sb.WriteString("\nFor several agents at once use `artifact_render_batch`. For a recorded event stream use `artifact_replay_stream`. To check a result against a JSON Schema contract first, use `artifact_validate_payload`.\n")

		sb.WriteString("\n## Agent Types\n\n")
		sb.WriteString("| Agent | Layout |\n")
		sb.WriteString("|-------|--------|\n")
		sb.WriteString("| dataharvester | quality metrics, cleaning operations, column types |\n")
		sb.WriteString("| trendanalyst | metadata, internal and external trends, findings, opportunities, risks |\n")
		sb.WriteString("| forecaster | model config, one chart and stats grid per metric, interpretation |\n")
		sb.WriteString("| mctsoptimizer | savings grid, recommendation |\n")
		sb.WriteString("| ordermanager | order summary, plan, approval alert and actions marker |\n")
		sb.WriteString("| notifier | delivery metrics, message, sent alert |\n")
		sb.WriteString("| visualizer | chart from chart_data and chart_spec |\n")
		sb.WriteString("| anything else | inferred from the data |\n")
		if agent != layout.AgentGeneric {
			fmt.Fprintf(&sb, "\nThis result comes from **%s**, so pass `agent_type: %q`.\n", agent, agent.String())
		}

		sb.WriteString("\n## Components\n\n")
		for _, c := range layout.Catalog() {
			fmt.Fprintf(&sb, "- `%s`: %s (props: %s)\n", c.Type, c.Description, strings.Join(c.Props, ", "))
		}
		fmt.Fprintf(&sb, "\nA TextBlock whose content is `%s` marks where approve/reject buttons belong.\n", layout.OrderApprovalMarker)

		sb.WriteString("\n## Formatting\n\n")
		fmt.Fprintf(&sb, "- Currency values are shown with %q and grouped digits\n", cfg.CurrencySymbol)
		sb.WriteString("- Percentages carry one decimal; dates read like `05 Mar 2024`\n")
		sb.WriteString("- Missing values show as N/A\n")

		sb.WriteString("\n## Tips\n")
		sb.WriteString("- Components arrive sorted by `order`; render them in that order and honor `width` (full, half, third)\n")
		sb.WriteString("- Unknown component kinds degrade to a JsonViewer, so a stale client never breaks\n")
		sb.WriteString("- Summarize the layout for the reader; do not paste it back verbatim\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for rendering agent results as layouts",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
