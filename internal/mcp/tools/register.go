package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: artifact_infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "artifact_infer_schema",
		Description: "Infer a display schema from an agent result. Returns {schema: {type, fields: [{key, type, format, label, nullable}], rowCount, confidence}, shape: {key_value, tabular, time_series, date_field, number_fields, strategy}}. Set include_json_schema for a JSON Schema export; pass samples to validate other payloads against it. Use select (jq) to narrow large payloads first.",
	}, ToolInferSchema(d))

	// Tool 2: artifact_generate_layout
	AddTool(srv, &sdkmcp.Tool{
		Name:        "artifact_generate_layout",
		Description: "Render an agent result into an ordered UI layout of components (MetricsGrid, DataTable, ChartCard, TextBlock, JsonViewer, Alert). Known agents (dataharvester, trendanalyst, forecaster, mctsoptimizer, ordermanager, notifier, visualizer) get hand-tuned layouts; anything else is laid out from its inferred schema. Error payloads render an Execution Failed alert, empty ones a No Data alert. The layout is cached; read resource.uri to fetch it again.",
	}, ToolGenerateLayout(d))

	// Tool 3: artifact_render_batch
	AddTool(srv, &sdkmcp.Tool{
		Name:        "artifact_render_batch",
		Description: "Render several agent results concurrently. Returns {artifacts: [{index, agent, status, fingerprint, layout}], summary: {total, ok, failed, empty}} in input order. Use this for a dashboard of many agents instead of repeated artifact_generate_layout calls.",
	}, ToolRenderBatch(d))

	// Tool 4: artifact_replay_stream
	AddTool(srv, &sdkmcp.Tool{
		Name:        "artifact_replay_stream",
		Description: "Replay a recorded agent lifecycle stream (SSE data: lines or JSON lines with {type, agent, data}) and return each agent's final state with its rendered layout. Malformed events are skipped and counted. Completed agents render their result, failed agents an error alert, running agents a progress bar.",
	}, ToolReplayStream(d))

	// Tool 5: artifact_validate_payload
	AddTool(srv, &sdkmcp.Tool{
		Name:        "artifact_validate_payload",
		Description: "Validate an agent result against a JSON Schema contract before rendering it. Set each_item to check every row of an array separately; failures are aggregated into common_errors. Returns {summary: {total, matching_count, failed_count, all_match}, results: [{valid, errors}]}.",
	}, ToolValidatePayload(d))
}
