package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "visualize_agent_result",
		Description: "RECOMMENDED: Turn an agent result into a UI layout. Walks through schema inference, layout generation and reading the cached layout, with the component vocabulary and agent names.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "agent_type",
				Description: "Agent that produced the result (e.g. forecaster, trend_analyst). Leave empty for any other payload.",
				Required:    false,
			},
			{
				Name:        "goal",
				Description: "What the rendered view should help the reader decide",
				Required:    false,
			},
		},
	}, HandleVisualizeAgentResult(cfg))
}
