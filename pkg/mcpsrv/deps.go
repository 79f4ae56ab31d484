package mcpsrv

import (
	"log/slog"

	"github.com/usestring/artifact-mcp/internal/cache"
	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/artifact"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config   *config.Config
	Renderer *artifact.Renderer
	Cache    *cache.LayoutCache
	Logger   *slog.Logger
}
