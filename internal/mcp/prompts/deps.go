// Package prompts contains MCP prompt implementations for artifact-mcp.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	CurrencySymbol string
	CacheEnabled   bool
}
