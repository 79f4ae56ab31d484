package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/mcpsrv"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var logLevel, logFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools on stdio (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []mcpsrv.Option{mcpsrv.WithConfig(cfg)}
			if logLevel != "" {
				opts = append(opts, mcpsrv.WithLogLevel(logLevel))
			}
			if logFile != "" {
				opts = append(opts, mcpsrv.WithLogFile(logFile))
			}

			server, err := mcpsrv.NewServer(opts...)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting artifact MCP server on stdio")
			if err := server.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file override (default: LOG_FILE or stderr)")
	return cmd
}
