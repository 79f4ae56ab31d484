package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/infer"
)

func newInferCmd(cfg *config.Config) *cobra.Command {
	var jsonSchema bool

	cmd := &cobra.Command{
		Use:   "infer [file]",
		Short: "Infer the display schema of a payload",
		Args:  cobra.MaximumNArgs(1),
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
			schema := infer.Infer(data)
			logger.Debug("inferred schema",
				slog.String("type", string(schema.Type)),
				slog.Int("fields", len(schema.Fields)),
				slog.Float64("confidence", schema.Confidence),
			)
			if jsonSchema {
				return writeOutput(cmd, infer.ToJSONSchema(schema))
			}
			return writeOutput(cmd, schema)
		},
	}
	cmd.Flags().BoolVar(&jsonSchema, "json-schema", false, "Print the schema as JSON Schema")
	cmd.Flags().StringP("select", "s", "", "jq expression applied to the payload first")
	return cmd
}
