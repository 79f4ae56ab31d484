package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// Status is the lifecycle state of one agent.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether s is completed or failed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// AgentState is the latest known state of one agent.
type AgentState struct {
	Name     string         `json:"name"`
	Status   Status         `json:"status"`
	Progress float64        `json:"progress"`
	Activity string         `json:"activity,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty"`
	Result   any            `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
	Updated  time.Time      `json:"updated"`
}

// Workflow is the state of the whole run.
type Workflow struct {
	Status    string `json:"status"` // idle, running, completed or failed
	Error     string `json:"error,omitempty"`
	LastError string `json:"last_error,omitempty"`
	Connected bool   `json:"connected"`
	Ended     bool   `json:"ended"`
}

// Stats summarizes one Consume call.
type Stats struct {
	Events  int  `json:"events"`
	Skipped int  `json:"skipped"`
	Ended   bool `json:"ended"`
}

// Tracker folds lifecycle events into per-agent state. Events may arrive
// late, duplicated or out of order: a completed or failed agent is not
// moved back by later started or progress events, and repeated
// completions simply overwrite the result. Safe for concurrent use.
type Tracker struct {
	mu       sync.RWMutex
	agents   map[string]*AgentState
	order    []string
	workflow Workflow
	now      func() time.Time
	logger   *slog.Logger
}

// NewTracker returns an empty Tracker.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		agents:   make(map[string]*AgentState),
		workflow: Workflow{Status: "idle"},
		now:      time.Now,
		logger:   logger,
	}
}

// Apply folds one event into the tracked state.
func (t *Tracker) Apply(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Type {
	case EventConnected:
		t.workflow.Connected = true

	case EventWorkflowStarted:
		t.workflow.Status = "running"
		agents, _ := payload.SliceAt(ev.Data, "agents")
		for _, a := range agents {
			name := agentName(a)
			if name != "" {
				t.agent(name)
			}
		}

	case EventAgentStarted:
		st := t.live(ev.Agent)
		if st == nil {
			return
		}
		st.Status = StatusProcessing
		st.Progress = 0
		st.Activity = payload.StringOr(ev.Data, "Starting...", "task")

	case EventAgentProgress:
		st := t.live(ev.Agent)
		if st == nil || ev.Data == nil {
			return
		}
		st.Status = StatusProcessing
		st.Progress = payload.FloatOr(ev.Data, 0, "progress")
		st.Activity = payload.StringOr(ev.Data, "Processing...", "current_activity")
		if m, ok := payload.MapAt(ev.Data, "metrics"); ok {
			st.Metrics = m
		}

	case EventAgentCompleted:
		if ev.Agent == "" {
			return
		}
		st := t.agent(ev.Agent)
		st.Status = StatusCompleted
		st.Progress = 100
		st.Activity = "Completed"
		st.Error = ""
		if result, ok := payload.Get(ev.Data, "result"); ok && payload.Truthy(result) {
			st.Result = result
		}
		st.Updated = t.now()

	case EventAgentFailed:
		if ev.Agent == "" {
			return
		}
		st := t.agent(ev.Agent)
		if st.Status == StatusCompleted {
			t.logger.Debug("ignoring failure of completed agent", slog.String("agent", ev.Agent))
			return
		}
		msg := payload.StringOr(ev.Data, "Unknown error", "error")
		st.Status = StatusFailed
		st.Progress = 0
		st.Activity = "Failed: " + msg
		st.Error = msg
		st.Updated = t.now()

	case EventWorkflowCompleted:
		t.workflow.Status = "completed"

	case EventWorkflowFailed:
		t.workflow.Status = "failed"
		t.workflow.Error = payload.StringOr(ev.Data, "Workflow failed", "error")

	case EventError:
		t.workflow.LastError = payload.StringOr(ev.Data, "Unknown error", "message")

	case EventStreamEnded:
		t.workflow.Ended = true

	case EventHeartbeat:
	}
}

// agent returns the state for name, creating a queued entry on first use.
// Caller holds mu.
func (t *Tracker) agent(name string) *AgentState {
	st, ok := t.agents[name]
	if !ok {
		st = &AgentState{Name: name, Status: StatusQueued, Updated: t.now()}
		t.agents[name] = st
		t.order = append(t.order, name)
	}
	return st
}

// live returns the state for a non-terminal agent, or nil when the event
// names no agent or the agent already finished. Caller holds mu.
func (t *Tracker) live(name string) *AgentState {
	if name == "" {
		return nil
	}
	st := t.agent(name)
	if st.Status.Terminal() {
		return nil
	}
	st.Updated = t.now()
	return st
}

func agentName(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	for _, key := range []string{"name", "id", "agent"} {
		if s := payload.StringOr(v, "", key); s != "" {
			return s
		}
	}
	return ""
}

// Agents returns a copy of every agent state in first-seen order.
func (t *Tracker) Agents() []AgentState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]AgentState, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.agents[name])
	}
	return out
}

// Agent returns a copy of one agent's state.
func (t *Tracker) Agent(name string) (AgentState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.agents[name]
	if !ok {
		return AgentState{}, false
	}
	return *st, true
}

// Workflow returns a copy of the workflow state.
func (t *Tracker) Workflow() Workflow {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workflow
}

type decoded struct {
	ev      Event
	skipped int
	err     error
}

// Consume decodes events from r and applies them until EOF, a
// stream_ended event, or ctx is done. On cancellation it returns without
// waiting for a blocked read; closing r releases the reader goroutine.
func (t *Tracker) Consume(ctx context.Context, r io.Reader) (Stats, error) {
	dec := NewDecoder(r, t.logger)
	events := make(chan decoded)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			ev, err := dec.Next()
			select {
			case events <- decoded{ev, dec.Skipped(), err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var stats Stats
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case item, ok := <-events:
			if !ok {
				return stats, nil
			}
			stats.Skipped = item.skipped
			if errors.Is(item.err, io.EOF) {
				return stats, nil
			}
			if item.err != nil {
				return stats, fmt.Errorf("reading event stream: %w", item.err)
			}

			stats.Events++
			t.Apply(item.ev)
			if item.ev.Type == EventStreamEnded {
				stats.Ended = true
				return stats, nil
			}
		}
	}
}

// AgentArtifact pairs an agent's state with its rendered artifact.
type AgentArtifact struct {
	State    AgentState        `json:"state"`
	Artifact artifact.Artifact `json:"artifact"`
}

// Layouts renders every tracked agent in first-seen order. Finished
// agents are rendered concurrently with at most workers in flight; agents
// still running get a progress artifact.
func (t *Tracker) Layouts(ctx context.Context, r *artifact.Renderer, workers int) ([]AgentArtifact, error) {
	if r == nil {
		r = artifact.NewRenderer(nil, t.logger)
	}

	states := t.Agents()
	out := make([]AgentArtifact, len(states))

	var items []artifact.Item
	var slots []int
	for i, st := range states {
		out[i].State = st
		switch st.Status {
		case StatusCompleted:
			items = append(items, artifact.Item{Agent: st.Name, Data: st.Result})
			slots = append(slots, i)
		case StatusFailed:
			items = append(items, artifact.Item{Agent: st.Name, Data: map[string]any{"error": st.Error}})
			slots = append(slots, i)
		default:
			out[i].Artifact = r.Progress(st.Name, st.Progress, st.Activity)
		}
	}

	rendered, err := r.RenderAll(ctx, items, workers)
	if err != nil {
		return nil, err
	}
	for j, a := range rendered {
		out[slots[j]].Artifact = a
	}
	return out, nil
}
