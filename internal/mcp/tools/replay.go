package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/internal/stream"
	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// ReplayStreamInput is the input for artifact_replay_stream.
type ReplayStreamInput struct {
	Transcript string `json:"transcript" jsonschema:"Recorded agent event stream: server-sent events (data: lines) or one JSON event per line"`
	Workers    int    `json:"workers,omitempty" jsonschema:"Max concurrent renders (default: RENDER_WORKERS)"`
	SkipLayout bool   `json:"skip_layout,omitempty" jsonschema:"Return agent states only, without layouts"`
}

// ToolReplayStream folds a recorded lifecycle stream into per-agent state
// and renders each agent's final artifact.
func ToolReplayStream(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ReplayStreamInput) (*sdkmcp.CallToolResult, types.ReplayStreamOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ReplayStreamInput) (*sdkmcp.CallToolResult, types.ReplayStreamOutput, error) {
		if strings.TrimSpace(input.Transcript) == "" {
			return nil, types.ReplayStreamOutput{}, ErrInvalidInput("transcript is required")
		}
		if limit := d.Config.MaxPayloadBytes; limit > 0 && len(input.Transcript) > limit {
			return nil, types.ReplayStreamOutput{}, ErrInvalidInput(fmt.Sprintf("transcript is %d bytes, limit is %d", len(input.Transcript), limit))
		}

		tracker := stream.NewTracker(d.logger())
		stats, err := tracker.Consume(ctx, strings.NewReader(input.Transcript))
		if err != nil {
			return nil, types.ReplayStreamOutput{}, WrapDecodeError("transcript", err)
		}

		var sink LayoutSink
		if d.Cache != nil {
			sink = d.Cache
		}
		output, err := ReplayOutput(ctx, tracker, stats, d.Renderer, d.workers(input.Workers), !input.SkipLayout, sink)
		if err != nil {
			return nil, types.ReplayStreamOutput{}, err
		}
		return nil, output, nil
	}
}

// LayoutSink receives rendered artifacts, e.g. the layout cache.
type LayoutSink interface {
	Put(artifact.Artifact)
}

// ReplayOutput converts tracker state into the tool output. Layouts are
// rendered only when withLayouts is set, and finished ones go to sink.
func ReplayOutput(ctx context.Context, tracker *stream.Tracker, stats stream.Stats, r *artifact.Renderer, workers int, withLayouts bool, sink LayoutSink) (types.ReplayStreamOutput, error) {
	wf := tracker.Workflow()
	output := types.ReplayStreamOutput{
		Events:  stats.Events,
		Skipped: stats.Skipped,
		Ended:   stats.Ended,
		Workflow: types.WorkflowState{
			Status:    wf.Status,
			Error:     wf.Error,
			LastError: wf.LastError,
		},
	}

	states := tracker.Agents()
	output.Agents = make([]types.AgentResult, 0, len(states))
	for _, st := range states {
		output.Agents = append(output.Agents, types.AgentResult{
			Name:     st.Name,
			State:    string(st.Status),
			Progress: st.Progress,
			Activity: st.Activity,
			Error:    st.Error,
		})
	}
	if !withLayouts {
		return output, nil
	}

	rendered, err := tracker.Layouts(ctx, r, workers)
	if err != nil {
		return types.ReplayStreamOutput{}, err
	}
	for i, aa := range rendered {
		if sink != nil && aa.Artifact.Status != artifact.StatusPending {
			sink.Put(aa.Artifact)
		}
		layoutAny, err := types.ToAny(aa.Artifact.Layout)
		if err != nil {
			return types.ReplayStreamOutput{}, fmt.Errorf("serializing layout for %s: %w", aa.State.Name, err)
		}
		output.Agents[i].Status = string(aa.Artifact.Status)
		output.Agents[i].Fingerprint = aa.Artifact.Fingerprint
		output.Agents[i].Layout = layoutAny
	}
	return output, nil
}
