package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/internal/cache"
	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/internal/logging"
	"github.com/usestring/artifact-mcp/internal/mcp"
	"github.com/usestring/artifact-mcp/internal/mcp/tools"
	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

// Server is the artifact MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin artifact tools.
//
// Configuration comes from the environment (see internal/config); use
// functional options to override it, configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Setup logging unless the caller brought a logger
	logCleanup := func() error { return nil }
	logger := cfg.logger
	if logger == nil {
		logCfg := cfg.config.Logging()
		if cfg.logLevel != "" {
			logCfg.Level = cfg.logLevel
		}
		if cfg.logFile != "" {
			logCfg.FilePath = cfg.logFile
		}
		cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to setup logging: %w", err)
		}
		logCleanup = cleanup
		logger = slog.Default()
	}

	// Create infrastructure
	layoutCache, err := cache.NewLayoutCache(cfg.config.LayoutCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout cache: %w", err)
	}

	layoutOpts := append(cfg.config.GeneratorOptions(), cfg.layoutOpts...)
	layoutOpts = append(layoutOpts, layout.WithLogger(logger))
	renderer := artifact.NewRenderer(layout.New(layoutOpts...), logger)

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Config:   cfg.config,
		Renderer: renderer,
		Cache:    layoutCache,
		Logger:   logger,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Config:   cfg.config,
		Renderer: renderer,
		Cache:    layoutCache,
		Logger:   logger,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	// Create internal server
	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// RunTransport serves one session over t, e.g. an in-memory transport in tests.
func (s *Server) RunTransport(ctx context.Context, t sdkmcp.Transport) error {
	return s.internal.RunTransport(ctx, t)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
