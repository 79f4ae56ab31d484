package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/internal/mcp/tools"
	"github.com/usestring/artifact-mcp/internal/stream"
)

func newReplayCmd(cfg *config.Config) *cobra.Command {
	var statesOnly bool
	var workers int

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Replay a recorded agent event stream",
		Long: `Replay reads a recorded lifecycle stream (server-sent events or one JSON
event per line), folds it into per-agent state and prints each agent's
final artifact.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			data, _, err := readInput(cmd, path, cfg.MaxPayloadBytes)
			if err != nil {
				return err
			}

			tracker := stream.NewTracker(logger)
			stats, err := tracker.Consume(cmd.Context(), bytes.NewReader(data))
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = cfg.RenderWorkers
			}
			out, err := tools.ReplayOutput(cmd.Context(), tracker, stats, newRenderer(cfg, logger), workers, !statesOnly, nil)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&statesOnly, "states-only", false, "Print agent states without layouts")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Max concurrent renders (default: RENDER_WORKERS)")
	return cmd
}
