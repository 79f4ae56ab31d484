package main

import (
	"github.com/spf13/cobra"

	"github.com/usestring/artifact-mcp/internal/config"
)

func newRenderCmd(cfg *config.Config) *cobra.Command {
	var agent string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an agent result into a layout",
		Long: `Render reads an agent result (JSON or YAML) from file or stdin and prints
the artifact: status, fingerprint and the ordered component layout.`,
		Example: `  artifact-mcp render --agent forecaster forecast.json
  curl -s localhost:8000/result | artifact-mcp render --select .result -f yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := readPayload(cmd, args, cfg)
			if err != nil {
				return err
			}
			return writeOutput(cmd, newRenderer(cfg, logger).Render(data, agent))
		},
	}
	cmd.Flags().StringVarP(&agent, "agent", "a", "", "Producing agent, e.g. forecaster or trend_analyst (default: generic)")
	cmd.Flags().StringP("select", "s", "", "jq expression applied to the payload first")
	return cmd
}
