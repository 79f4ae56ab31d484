// Package artifact renders agent results into layouts, honoring the
// failure and empty-result checks that precede layout generation.
package artifact

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// Status classifies a rendered artifact.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusEmpty   Status = "empty"
	StatusPending Status = "pending"
)

const (
	defaultFailureMessage = "The agent could not complete the task. Please check backend logs."
	emptyMessage          = "This agent completed successfully but returned no data."
)

// Artifact is the rendered result of one agent.
type Artifact struct {
	Agent       string         `json:"agent,omitempty"`
	Status      Status         `json:"status"`
	Fingerprint string         `json:"fingerprint"`
	Layout      *layout.Layout `json:"layout"`
}

// Item is one agent result to render.
type Item struct {
	Agent string `json:"agent"`
	Data  any    `json:"data"`
}

// Renderer applies the failure and empty checks and then generates the
// layout. It is safe for concurrent use.
type Renderer struct {
	gen    *layout.Generator
	logger *slog.Logger
}

// NewRenderer returns a Renderer. A nil generator uses layout defaults.
func NewRenderer(gen *layout.Generator, logger *slog.Logger) *Renderer {
	if gen == nil {
		gen = layout.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{gen: gen, logger: logger}
}

var defaultRenderer = NewRenderer(nil, nil)

// Render renders data with default options.
func Render(data any, agentType string) Artifact {
	return defaultRenderer.Render(data, agentType)
}

// Render renders data for agentType.
//
// A falsy payload, or one carrying a non-empty string "error" field, yields
// a single error alert. An object or array with no entries yields a single
// info alert. Everything else goes through layout generation.
func (r *Renderer) Render(data any, agentType string) Artifact {
	a := Artifact{
		Agent:       agentType,
		Fingerprint: layout.Fingerprint(data, agentType),
	}

	if msg, failed := failure(data); failed {
		a.Status = StatusFailed
		a.Layout = alertLayout("execution-failed", layout.AlertError, "Execution Failed", msg)
		r.logger.Debug("rendered failed artifact", slog.String("agent", agentType))
		return a
	}

	if isEmpty(data) {
		a.Status = StatusEmpty
		a.Layout = alertLayout("no-data", layout.AlertInfo, "No Data", emptyMessage)
		r.logger.Debug("rendered empty artifact", slog.String("agent", agentType))
		return a
	}

	a.Status = StatusOK
	a.Layout = r.gen.Generate(data, agentType)
	r.logger.Debug("rendered artifact",
		slog.String("agent", agentType),
		slog.String("kind", layout.ParseAgent(agentType).String()),
		slog.Int("keys", keyCount(data)),
		slog.Int("components", len(a.Layout.Components)),
	)
	return a
}

// Progress renders an agent that has not finished yet.
func (r *Renderer) Progress(agentType string, percent float64, activity string) Artifact {
	if activity == "" {
		activity = "Processing"
	}
	percent = min(max(percent, 0), 100)
	return Artifact{
		Agent:       agentType,
		Status:      StatusPending,
		Fingerprint: layout.Fingerprint(map[string]any{"progress": percent, "activity": activity}, agentType),
		Layout: &layout.Layout{Components: []layout.Component{{
			ID:        "progress",
			Component: layout.ProgressBar,
			Props:     &layout.ProgressBarProps{Value: percent, Label: activity, Max: 100},
			Width:     layout.WidthFull,
			Order:     1,
		}}},
	}
}

// RenderAll renders items concurrently with at most workers in flight.
// Results keep the order of items.
func (r *Renderer) RenderAll(ctx context.Context, items []Item, workers int) ([]Artifact, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Artifact, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.Render(item.Data, item.Agent)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render batch: %w", err)
	}
	return out, nil
}

// RenderAll renders items with default options.
func RenderAll(ctx context.Context, items []Item, workers int) ([]Artifact, error) {
	return defaultRenderer.RenderAll(ctx, items, workers)
}

func failure(data any) (string, bool) {
	if !payload.Truthy(data) {
		return defaultFailureMessage, true
	}
	if msg, ok := payload.StringAt(data, "error"); ok && msg != "" {
		return msg, true
	}
	return "", false
}

func isEmpty(data any) bool {
	switch v := data.(type) {
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func keyCount(data any) int {
	switch v := data.(type) {
	case map[string]any:
		return len(v)
	case []any:
		return len(v)
	}
	return 0
}

func alertLayout(id string, kind layout.AlertType, title, message string) *layout.Layout {
	return &layout.Layout{Components: []layout.Component{{
		ID:        id,
		Component: layout.Alert,
		Props:     &layout.AlertProps{Type: kind, Title: title, Message: message},
		Width:     layout.WidthFull,
		Order:     1,
	}}}
}
