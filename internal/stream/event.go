// Package stream models the agent lifecycle event stream: decoding
// server-sent event transcripts, validating event envelopes and tracking
// per-agent state for rendering.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/usestring/artifact-mcp/internal/schema"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// EventType is the kind of a lifecycle event.
type EventType string

const (
	EventConnected         EventType = "connected"
	EventWorkflowStarted   EventType = "workflow_started"
	EventAgentStarted      EventType = "agent_started"
	EventAgentProgress     EventType = "agent_progress"
	EventAgentCompleted    EventType = "agent_completed"
	EventAgentFailed       EventType = "agent_failed"
	EventWorkflowCompleted EventType = "workflow_completed"
	EventWorkflowFailed    EventType = "workflow_failed"
	EventHeartbeat         EventType = "heartbeat"
	EventStreamEnded       EventType = "stream_ended"
	EventError             EventType = "error"
)

// Event is one message of the stream.
type Event struct {
	Type      EventType `json:"type" jsonschema:"enum=connected,enum=workflow_started,enum=agent_started,enum=agent_progress,enum=agent_completed,enum=agent_failed,enum=workflow_completed,enum=workflow_failed,enum=heartbeat,enum=stream_ended,enum=error"`
	Agent     string    `json:"agent,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp any       `json:"timestamp,omitempty" jsonschema:"description=ISO 8601 string or epoch seconds"`
	SessionID string    `json:"session_id,omitempty"`
}

// EnvelopeSchema returns the JSON Schema every event must satisfy.
func EnvelopeSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	s := r.Reflect(&Event{})
	s.Title = "Agent lifecycle event"
	return s
}

var envelope = schema.MustCompile(EnvelopeSchema())

// ParseEvent decodes and validates one event from JSON text.
func ParseEvent(data []byte) (Event, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, fmt.Errorf("invalid event JSON: %w", err)
	}
	if result := envelope.ValidateValue(raw); !result.Valid {
		return Event{}, &InvalidEventError{Result: result}
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("invalid event: %w", err)
	}
	return ev, nil
}

// InvalidEventError reports an event that failed envelope validation.
type InvalidEventError struct {
	Result *types.ValidationResult
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("event does not match envelope schema: %v", e.Result.Errors)
}
