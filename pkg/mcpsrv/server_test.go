package mcpsrv

import (
	"context"
	"log/slog"
	"testing"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/artifact-mcp/internal/config"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

type countInput struct{}

type countOutput struct {
	Count int `json:"count"`
}

func testConfig() *config.Config {
	return &config.Config{
		CurrencySymbol:      "₹",
		FormatLanguage:      "en",
		TableMaxRows:        10,
		LayoutCacheMaxItems: 4,
		RenderWorkers:       1,
		MaxBatchItems:       10,
		MaxPayloadBytes:     1 << 16,
	}
}

func TestNewServer_CustomToolSeesDeps(t *testing.T) {
	srv, err := NewServer(
		WithConfig(testConfig()),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithCurrencySymbol("$"),
		WithoutBuiltinPrompts(),
		WithDepsTool(&mcp.Tool{Name: "cached_layouts", Description: "Count cached layouts"},
			func(d *Deps) func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
				return func(ctx context.Context, req *mcp.CallToolRequest, in countInput) (*mcp.CallToolResult, countOutput, error) {
					return nil, countOutput{Count: d.Cache.Len()}, nil
				}
			}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := srv.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	cs, err := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0.0.1"}, nil).Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "artifact_generate_layout",
		Arguments: map[string]any{"text": `{"total_cost": 1250, "orders": 3}`},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	components, ok := payload.SliceAt(res.StructuredContent, "layout", "components")
	require.True(t, ok)
	value, ok := payload.StringAt(components[0], "props", "metrics", "Total Cost")
	require.True(t, ok)
	assert.Equal(t, "$1,250", value)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "cached_layouts", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, payload.FloatOr(res.StructuredContent, 0, "count"))
}
