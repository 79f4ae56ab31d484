// Package mcpsrv provides an extensible MCP server that renders agent
// results as UI layouts.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin artifact tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools that reuse the renderer and layout cache:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "render_inventory", Description: "Render the inventory snapshot"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            a, _ := d.Cache.Render(d.Renderer, loadInventory(), "")
//	            return nil, MyOutput{Fingerprint: a.Fingerprint}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Environment variables are read by default; options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithCurrencySymbol("$"),
//	    mcpsrv.WithLanguage(language.AmericanEnglish),
//	    mcpsrv.WithLogLevel("debug"),
//	)
package mcpsrv
