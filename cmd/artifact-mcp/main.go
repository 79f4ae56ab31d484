// Command artifact-mcp serves agent-result layouts over MCP and renders
// them from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usestring/artifact-mcp/internal/config"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root with no
// subcommand serves MCP on stdio.
func newRootCmd(cfg *config.Config) *cobra.Command {
	serve := newServeCmd(cfg)

	root := &cobra.Command{
		Use:   "artifact-mcp",
		Short: "Render agent results as UI layouts",
		Long: `artifact-mcp turns the JSON output of analytics agents into ordered UI
layouts (metric grids, tables, charts, text blocks, alerts).

With no subcommand it serves the MCP tools on stdio. The render, infer and
replay subcommands run the same pipeline on files or stdin.

Configuration is read from the environment: LOG_LEVEL, LOG_FILE,
CURRENCY_SYMBOL, FORMAT_LANGUAGE, TABLE_MAX_ROWS, RENDER_WORKERS and others.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringP("format", "f", "json", "Output format: json or yaml")

	root.AddCommand(serve, newRenderCmd(cfg), newInferCmd(cfg), newReplayCmd(cfg))
	return root
}
