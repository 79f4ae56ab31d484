package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/internal/logging"
	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/payload"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// readInput reads path, or stdin when path is empty or "-", up to limit bytes.
func readInput(cmd *cobra.Command, path string, limit int) ([]byte, string, error) {
	var r io.Reader = cmd.InOrStdin()
	contentType := ""
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		r = f
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			contentType = "application/yaml"
		case ".json":
			contentType = "application/json"
		}
	}

	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading input: %w", err)
	}
	if limit > 0 && len(data) > limit {
		return nil, "", fmt.Errorf("input exceeds %d bytes (MAX_PAYLOAD_BYTES)", limit)
	}
	return data, contentType, nil
}

// readPayload reads and decodes a JSON or YAML payload, then applies the
// --select jq expression when given.
func readPayload(cmd *cobra.Command, args []string, cfg *config.Config) (any, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	data, contentType, err := readInput(cmd, path, cfg.MaxPayloadBytes)
	if err != nil {
		return nil, err
	}
	v, err := payload.Decode(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	expr, _ := cmd.Flags().GetString("select")
	if expr == "" {
		return v, nil
	}
	out, err := payload.Query(v, expr)
	if err != nil {
		return nil, fmt.Errorf("select %q: %w", expr, err)
	}
	return out, nil
}

// writeOutput prints v in the --format chosen on the root command.
func writeOutput(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		plain, err := types.ToAny(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

// commandLogger builds the logger for one-shot commands from the LOG_*
// settings. Without LOG_FILE it writes to the command's stderr.
func commandLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, func() error, error) {
	logCfg := cfg.Logging()
	if logCfg.FilePath != "" {
		cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to setup logging: %w", err)
		}
		return slog.Default(), cleanup, nil
	}
	logger := slog.New(logging.NewHandler(cmd.ErrOrStderr(), logCfg))
	return logger, func() error { return nil }, nil
}

// newRenderer builds a renderer from the formatting settings.
func newRenderer(cfg *config.Config, logger *slog.Logger) *artifact.Renderer {
	opts := append(cfg.GeneratorOptions(), layout.WithLogger(logger))
	return artifact.NewRenderer(layout.New(opts...), logger)
}
