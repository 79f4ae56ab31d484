package tools

import (
	"log/slog"

	"github.com/usestring/artifact-mcp/internal/cache"
	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/artifact"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config   *config.Config
	Renderer *artifact.Renderer
	Cache    *cache.LayoutCache
	Logger   *slog.Logger
}

// logger returns the configured logger or the default one.
func (d *Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// render renders through the layout cache when one is configured.
func (d *Deps) render(data any, agentType string) (artifact.Artifact, bool) {
	if d.Cache != nil {
		return d.Cache.Render(d.Renderer, data, agentType)
	}
	if d.Renderer == nil {
		return artifact.Render(data, agentType), false
	}
	return d.Renderer.Render(data, agentType), false
}

// workers returns n when positive, else the configured default.
func (d *Deps) workers(n int) int {
	if n > 0 {
		return n
	}
	return d.Config.RenderWorkers
}
