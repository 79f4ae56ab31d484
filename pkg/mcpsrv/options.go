package mcpsrv

import (
	"context"
	"log/slog"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config
	logger *slog.Logger

	// Formatting overrides, applied after the environment
	layoutOpts []layout.Option

	// Logging overrides
	logLevel string
	logFile  string

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Custom tools, prompts and resources, applied in option order once
	// Deps exist
	registrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithLogger makes the server log through l instead of installing the
// configured global logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *serverConfig) {
		cfg.logger = l
	}
}

// WithConfig replaces the environment configuration.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithCurrencySymbol sets the symbol used for currency values.
func WithCurrencySymbol(symbol string) Option {
	return func(cfg *serverConfig) {
		cfg.layoutOpts = append(cfg.layoutOpts, layout.WithCurrencySymbol(symbol))
	}
}

// WithLanguage sets the language used for number grouping.
func WithLanguage(tag language.Tag) Option {
	return func(cfg *serverConfig) {
		cfg.layoutOpts = append(cfg.layoutOpts, layout.WithLanguage(tag))
	}
}

// WithMaxRows sets how many rows data tables show before paging.
func WithMaxRows(n int) Option {
	return func(cfg *serverConfig) {
		cfg.layoutOpts = append(cfg.layoutOpts, layout.WithMaxRows(n))
	}
}

// WithoutBuiltinTools disables all builtin artifact tools and resources.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool. Its output type goes through the same
// zero-value schema check as the builtin tools.
//
//	type CountOutput struct {
//	    Count int `json:"count"`
//	}
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "ping", Description: "Liveness check"},
//	    func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, CountOutput, error) {
//	        return nil, CountOutput{Count: 1}, nil
//	    })
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool built from Deps, for tools that
// render layouts, read the layout cache or need the configuration.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "cached_layouts", Description: "Count cached layouts"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, CountOutput, error) {
//	            return nil, CountOutput{Count: d.Cache.Len()}, nil
//	        }
//	    },
//	)
//
// See examples/layout-search for a complete program.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt.
func WithPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResource registers a custom static resource.
func WithResource(resource *mcp.Resource, handler mcp.ResourceHandler) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddResource(resource, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template, e.g.
// "dashboard://{session}/layouts".
func WithResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
