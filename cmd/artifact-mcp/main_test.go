package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/usestring/artifact-mcp/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWith(t, config.Load(), stdin, args...)
	return out, err
}

func executeWith(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(cfg)
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender_Stdin(t *testing.T) {
	out, err := execute(t, `{"total_revenue": 1250, "order_count": 4}`, "render")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ok", got["status"])
	assert.NotEmpty(t, got["fingerprint"])
}

func TestRender_SelectYAML(t *testing.T) {
	out, err := execute(t, `{"result": {"error": "upstream timeout"}}`, "render", "--select", ".result", "-f", "yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "failed", got["status"])
}

func TestRender_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	require.NoError(t, os.WriteFile(path, []byte("revenue: 10\norders: 2\n"), 0o600))

	out, err := execute(t, "", "render", "--agent", "data_analyst", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, `{not json`, "render")
	assert.Error(t, err)

	_, err = execute(t, `{}`, "render", "-f", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "", "render", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestInfer(t *testing.T) {
	out, err := execute(t, `[{"date": "2024-01-01", "sales": 100}, {"date": "2024-01-02", "sales": 150}]`, "infer")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "array", got["type"])
	assert.EqualValues(t, 2, got["row_count"])

	out, err = execute(t, `{"a": 1}`, "infer", "--json-schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "object"`)
}

func TestReplay(t *testing.T) {
	transcript := strings.Join([]string{
		`data: {"type": "workflow_started", "data": {"agents": ["forecaster", "trend_analyst"]}}`,
		``,
		`data: {"type": "agent_completed", "agent": "forecaster", "data": {"result": {"forecast": [{"date": "2024-02-01", "value": 3}]}}}`,
		``,
		`data: {"type": "agent_progress", "agent": "trend_analyst", "data": {"progress": 40}}`,
		``,
		`data: {"type": "stream_ended"}`,
		``,
	}, "\n")

	out, err := execute(t, transcript, "replay")
	require.NoError(t, err)

	var got struct {
		Events int  `json:"events"`
		Ended  bool `json:"ended"`
		Agents []struct {
			Name   string `json:"name"`
			State  string `json:"state"`
			Status string `json:"status"`
		} `json:"agents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Events)
	assert.True(t, got.Ended)
	require.Len(t, got.Agents, 2)
	assert.Equal(t, "completed", got.Agents[0].State)
	assert.Equal(t, "ok", got.Agents[0].Status)
	assert.Equal(t, "pending", got.Agents[1].Status)
}

func TestRender_HonorsLogSettings(t *testing.T) {
	cfg := config.Load()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	cfg.LogFile = ""

	out, logs, err := executeWith(t, cfg, `{"revenue": 10}`, "render")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(logs, "\n", 2)[0]), &line), "logs: %s", logs)
	assert.Equal(t, "DEBUG", line["level"])
	assert.Contains(t, logs, "rendered artifact")

	cfg.LogLevel = "error"
	_, logs, err = executeWith(t, cfg, `{"revenue": 10}`, "render")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestReplay_LogsToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Load()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "cli.log")

	_, logs, err := executeWith(t, cfg, "data: {\"type\": \"bogus\"}\n\n", "replay")
	require.NoError(t, err)
	assert.Empty(t, logs)

	written, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), "skipping invalid stream event")
}
