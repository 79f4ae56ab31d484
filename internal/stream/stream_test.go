package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func decodeAll(t *testing.T, input string) ([]Event, int) {
	t.Helper()
	dec := NewDecoder(strings.NewReader(input), nil)
	var events []Event
	for {
		ev, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return events, dec.Skipped()
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"agent_progress","agent":"forecaster","data":{"progress":40},"timestamp":1718000000}`))
	require.NoError(t, err)
	assert.Equal(t, EventAgentProgress, ev.Type)
	assert.Equal(t, "forecaster", ev.Agent)
	assert.Equal(t, map[string]any{"progress": 40.0}, ev.Data)

	_, err = ParseEvent([]byte(`{"type":"agent_exploded"}`))
	var invalid *InvalidEventError
	require.ErrorAs(t, err, &invalid)
	assert.False(t, invalid.Result.Valid)

	_, err = ParseEvent([]byte(`{"agent":"forecaster"}`))
	assert.ErrorAs(t, err, &invalid)

	_, err = ParseEvent([]byte(`{"type":`))
	assert.Error(t, err)
	assert.False(t, errors.As(err, &invalid))
}

func TestDecoder_SSE(t *testing.T) {
	input := strings.Join([]string{
		": keep-alive",
		"event: message",
		`data: {"type":"connected","session_id":"s1"}`,
		"",
		"id: 7",
		`data: {"type":"agent_completed",`,
		`data:  "agent":"notifier","data":{"result":{"sent":true}}}`,
		"",
		"",
		`data: not json`,
		"",
		`data: {"type":"mystery"}`,
		"",
		`data: {"type":"stream_ended"}`,
	}, "\r\n")

	events, skipped := decodeAll(t, input)
	require.Len(t, events, 3)
	assert.Equal(t, EventConnected, events[0].Type)
	assert.Equal(t, "s1", events[0].SessionID)
	assert.Equal(t, EventAgentCompleted, events[1].Type)
	assert.Equal(t, "notifier", events[1].Agent)
	assert.Equal(t, EventStreamEnded, events[2].Type)
	assert.Equal(t, 2, skipped)
}

func TestDecoder_NDJSON(t *testing.T) {
	input := `{"type":"heartbeat"}
{"type":"agent_started","agent":"forecaster"}
{"broken"
{"type":"workflow_completed"}
`
	events, skipped := decodeAll(t, input)
	require.Len(t, events, 3)
	assert.Equal(t, EventHeartbeat, events[0].Type)
	assert.Equal(t, EventAgentStarted, events[1].Type)
	assert.Equal(t, EventWorkflowCompleted, events[2].Type)
	assert.Equal(t, 1, skipped)
}

func TestDecoder_Empty(t *testing.T) {
	events, skipped := decodeAll(t, "")
	assert.Empty(t, events)
	assert.Zero(t, skipped)
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker(nil)

	tr.Apply(Event{Type: EventConnected})
	tr.Apply(Event{Type: EventWorkflowStarted, Data: map[string]any{
		"agents": []any{"dataharvester", map[string]any{"name": "forecaster"}, map[string]any{"id": "notifier"}, 3.0},
	}})

	wf := tr.Workflow()
	assert.True(t, wf.Connected)
	assert.Equal(t, "running", wf.Status)

	agents := tr.Agents()
	require.Len(t, agents, 3)
	for i, name := range []string{"dataharvester", "forecaster", "notifier"} {
		assert.Equal(t, name, agents[i].Name)
		assert.Equal(t, StatusQueued, agents[i].Status)
	}

	tr.Apply(Event{Type: EventAgentStarted, Agent: "forecaster"})
	st, ok := tr.Agent("forecaster")
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, st.Status)
	assert.Equal(t, "Starting...", st.Activity)

	tr.Apply(Event{Type: EventAgentProgress, Agent: "forecaster", Data: map[string]any{
		"progress":         55.0,
		"current_activity": "Fitting model",
		"metrics":          map[string]any{"mape": 4.2},
	}})
	st, _ = tr.Agent("forecaster")
	assert.Equal(t, 55.0, st.Progress)
	assert.Equal(t, "Fitting model", st.Activity)
	assert.Equal(t, map[string]any{"mape": 4.2}, st.Metrics)

	tr.Apply(Event{Type: EventAgentCompleted, Agent: "forecaster", Data: map[string]any{"result": map[string]any{"forecasts": map[string]any{}}}})
	st, _ = tr.Agent("forecaster")
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Equal(t, 100.0, st.Progress)
	assert.Equal(t, "Completed", st.Activity)

	tr.Apply(Event{Type: EventAgentFailed, Agent: "dataharvester"})
	st, _ = tr.Agent("dataharvester")
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "Unknown error", st.Error)
	assert.Equal(t, "Failed: Unknown error", st.Activity)

	tr.Apply(Event{Type: EventError, Data: map[string]any{"message": "vendor API slow"}})
	tr.Apply(Event{Type: EventWorkflowFailed, Data: map[string]any{"error": "harvest failed"}})
	tr.Apply(Event{Type: EventStreamEnded})

	wf = tr.Workflow()
	assert.Equal(t, "failed", wf.Status)
	assert.Equal(t, "harvest failed", wf.Error)
	assert.Equal(t, "vendor API slow", wf.LastError)
	assert.True(t, wf.Ended)
}

func TestTracker_TerminalStatesDoNotRegress(t *testing.T) {
	tr := NewTracker(nil)

	result := map[string]any{"channel": "email", "message": "sent"}
	tr.Apply(Event{Type: EventAgentCompleted, Agent: "notifier", Data: map[string]any{"result": result}})

	tr.Apply(Event{Type: EventAgentStarted, Agent: "notifier"})
	tr.Apply(Event{Type: EventAgentProgress, Agent: "notifier", Data: map[string]any{"progress": 10.0}})
	tr.Apply(Event{Type: EventAgentFailed, Agent: "notifier", Data: map[string]any{"error": "late"}})

	st, _ := tr.Agent("notifier")
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Equal(t, 100.0, st.Progress)
	assert.Equal(t, result, st.Result)
	assert.Empty(t, st.Error)

	tr.Apply(Event{Type: EventAgentFailed, Agent: "forecaster", Data: map[string]any{"error": "no data"}})
	tr.Apply(Event{Type: EventAgentProgress, Agent: "forecaster", Data: map[string]any{"progress": 80.0}})
	st, _ = tr.Agent("forecaster")
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, "no data", st.Error)
}

func TestTracker_DuplicateCompletionIsIdempotent(t *testing.T) {
	tr := NewTracker(nil)
	ev := Event{Type: EventAgentCompleted, Agent: "visualizer", Data: map[string]any{"result": map[string]any{"chart_data": []any{}}}}

	tr.Apply(ev)
	first, _ := tr.Agent("visualizer")
	tr.Apply(ev)
	second, _ := tr.Agent("visualizer")

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.Status, second.Status)
	assert.Len(t, tr.Agents(), 1)
}

func TestTracker_IgnoresAnonymousAgentEvents(t *testing.T) {
	tr := NewTracker(nil)
	tr.Apply(Event{Type: EventAgentStarted})
	tr.Apply(Event{Type: EventAgentCompleted})
	tr.Apply(Event{Type: EventHeartbeat})
	assert.Empty(t, tr.Agents())
}

func TestTracker_Consume(t *testing.T) {
	input := `data: {"type":"workflow_started","data":{"agents":["mctsoptimizer"]}}

data: {"type":"agent_completed","agent":"mctsoptimizer","data":{"result":{"simulation_stats":{"baseline_cost":100,"optimized_cost":42}}}}

data: {"type":"bogus"}

data: {"type":"stream_ended"}

data: {"type":"agent_started","agent":"never-read"}

`
	tr := NewTracker(nil)
	stats, err := tr.Consume(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Stats{Events: 3, Skipped: 1, Ended: true}, stats)

	_, ok := tr.Agent("never-read")
	assert.False(t, ok)
}

func TestTracker_ConsumeEOF(t *testing.T) {
	tr := NewTracker(nil)
	stats, err := tr.Consume(context.Background(), strings.NewReader(`{"type":"heartbeat"}`))
	require.NoError(t, err)
	assert.Equal(t, Stats{Events: 1}, stats)
}

func TestTracker_ConsumeCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close()

	tr := NewTracker(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := tr.Consume(ctx, pr)
		done <- err
	}()

	_, err := io.WriteString(pw, "data: {\"type\":\"connected\"}\n\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Workflow().Connected }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Consume did not return after cancel")
	}

	// Unblocks the reader goroutine so goleak sees it exit.
	pw.CloseWithError(io.ErrClosedPipe)
}

func TestTracker_Layouts(t *testing.T) {
	tr := NewTracker(nil)
	tr.Apply(Event{Type: EventWorkflowStarted, Data: map[string]any{"agents": []any{"notifier", "forecaster", "ordermanager"}}})
	tr.Apply(Event{Type: EventAgentCompleted, Agent: "notifier", Data: map[string]any{"result": map[string]any{
		"channel": "slack", "notification_type": "alert", "message": "Stock low",
	}}})
	tr.Apply(Event{Type: EventAgentProgress, Agent: "forecaster", Data: map[string]any{"progress": 30.0, "current_activity": "Training"}})
	tr.Apply(Event{Type: EventAgentFailed, Agent: "ordermanager", Data: map[string]any{"error": "vendor offline"}})

	out, err := tr.Layouts(context.Background(), artifact.NewRenderer(nil, nil), 2)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "notifier", out[0].State.Name)
	assert.Equal(t, artifact.StatusOK, out[0].Artifact.Status)
	_, ok := out[0].Artifact.Layout.Find("notification")
	assert.True(t, ok)

	assert.Equal(t, artifact.StatusPending, out[1].Artifact.Status)
	bar, ok := out[1].Artifact.Layout.Components[0].Props.(*layout.ProgressBarProps)
	require.True(t, ok)
	assert.Equal(t, 30.0, bar.Value)
	assert.Equal(t, "Training", bar.Label)

	assert.Equal(t, artifact.StatusFailed, out[2].Artifact.Status)
	alert, ok := out[2].Artifact.Layout.Components[0].Props.(*layout.AlertProps)
	require.True(t, ok)
	assert.Equal(t, "vendor offline", alert.Message)
}

func TestTracker_LayoutsCanceled(t *testing.T) {
	tr := NewTracker(nil)
	tr.Apply(Event{Type: EventAgentCompleted, Agent: "notifier", Data: map[string]any{"result": map[string]any{"message": "x"}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Layouts(ctx, nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
