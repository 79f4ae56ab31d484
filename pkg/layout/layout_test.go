package layout

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func metricsOf(t *testing.T, c Component) *Metrics {
	t.Helper()
	props, ok := c.Props.(*MetricsGridProps)
	require.True(t, ok, "component %s is %s, not a MetricsGrid", c.ID, c.Component)
	return props.Metrics
}

func metric(t *testing.T, c Component, label string) string {
	t.Helper()
	v, ok := metricsOf(t, c).Get(label)
	require.True(t, ok, "metric %q missing from %s (have %v)", label, c.ID, metricsOf(t, c).Labels())
	return v
}

func ids(l *Layout) []string {
	out := make([]string, 0, len(l.Components))
	for _, c := range l.Components {
		out = append(out, c.ID)
	}
	return out
}

func TestGenerate_KeyValue(t *testing.T) {
	l := Generate(decode(t, `{"total_cost": 1500, "count": 7, "growth_rate": 12.5, "status": "ok", "note": null}`), "")

	require.Len(t, l.Components, 1)
	c := l.Components[0]
	assert.Equal(t, MetricsGrid, c.Component)
	assert.Equal(t, WidthFull, c.Width)
	assert.Equal(t, []string{"Count", "Growth Rate", "Status", "Total Cost"}, metricsOf(t, c).Labels())
	assert.Equal(t, "₹1,500", metric(t, c, "Total Cost"))
	assert.Equal(t, "12.5%", metric(t, c, "Growth Rate"))
	assert.Equal(t, "7", metric(t, c, "Count"))
}

func TestGenerate_TimeSeries(t *testing.T) {
	l := Generate(decode(t, `[{"date":"2024-01-01","sales":100},{"date":"2024-01-02","sales":150}]`), "")

	assert.Equal(t, []ComponentType{ChartCard, DataTable}, l.Kinds())
	chart := l.Components[0].Props.(*ChartCardProps)
	assert.Equal(t, "date", chart.XKey)
	assert.Equal(t, "sales", chart.YKey)
	assert.Equal(t, ChartLine, chart.Type)

	table := l.Components[1].Props.(*DataTableProps)
	assert.Equal(t, []Column{
		{Key: "date", Label: "Date", Format: "date"},
		{Key: "sales", Label: "Sales", Format: "integer"},
	}, table.Columns)
	assert.Equal(t, DefaultMaxRows, table.MaxRows)
	assert.Len(t, table.Data, 2)
	assert.Less(t, l.Components[0].Order, l.Components[1].Order)
}

func TestGenerate_TabularWithoutDates(t *testing.T) {
	l := Generate(decode(t, `[{"name":"a","qty":1},{"name":"b","qty":2}]`), "")
	assert.Equal(t, []ComponentType{DataTable}, l.Kinds())
}

func TestGenerate_Nested(t *testing.T) {
	l := Generate(decode(t, `{
		"summary": {"revenue": 1200, "orders": 3},
		"rows": [{"sku": "a", "qty": 1}, {"sku": "b", "qty": 2}],
		"tags": ["x", "y"]
	}`), "")

	assert.Equal(t, []string{"table-rows", "nested-summary"}, ids(l))
	assert.Equal(t, WidthFull, l.Components[0].Width)
	assert.Equal(t, WidthHalf, l.Components[1].Width)
	assert.Equal(t, "₹1,200", metric(t, l.Components[1], "Revenue"))
	assert.Equal(t, "Summary", l.Components[1].Props.(*MetricsGridProps).Title)
	assert.Equal(t, "Rows", l.Components[0].Props.(*DataTableProps).Title)
}

func TestGenerate_NestedFallsBackToScalars(t *testing.T) {
	fields := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		fields = append(fields, fmt.Sprintf(`"k%02d": %d`, i, i))
	}
	l := Generate(decode(t, "{"+strings.Join(fields, ",")+"}"), "")

	require.Len(t, l.Components, 1)
	assert.Equal(t, MetricsGrid, l.Components[0].Component)
	assert.Equal(t, 25, metricsOf(t, l.Components[0]).Len())
}

func TestGenerate_JSONFallback(t *testing.T) {
	data := decode(t, `[[1, [2, [3]]], [4, 5]]`)
	l := Generate(data, "unknown-agent")

	require.Len(t, l.Components, 1)
	c := l.Components[0]
	assert.Equal(t, JSONViewer, c.Component)
	assert.Equal(t, 99, c.Order)
	assert.Equal(t, data, c.Props.(*JSONViewerProps).Data)
}

func TestGenerate_Scalar(t *testing.T) {
	l := Generate(42.0, "")
	require.Len(t, l.Components, 1)
	assert.Equal(t, "42", metric(t, l.Components[0], "Value"))
}

func TestGenerate_Idempotent(t *testing.T) {
	payloads := []struct {
		agent string
		json  string
	}{
		{"", `{"a": 1, "b": "x"}`},
		{"", `[{"date":"2024-01-01","v":1},{"date":"2024-01-02","v":2}]`},
		{"", `{"s": {"a": 1}, "t": [{"x": 1}]}`},
		{"", `[[1]]`},
		{"data_harvester", `{"profile": {"improvement_score": 12, "cleaning_operations": ["drop nulls"]}}`},
		{"trend analyst", `{"internal_trends": {"b": {"direction": "up"}, "a": {"direction": "down"}}}`},
		{"forecaster", `{"forecasts": {"sales": [1, 2, 3], "cost": {"values": [4]}}}`},
		{"MCTS-Optimizer", `{"simulation_stats": {"baseline_cost": 10, "optimized_cost": 5}}`},
		{"order_manager", `{"order_details": {"quantity": 5}}`},
		{"notifier", `{"channel": "email"}`},
		{"visualizer", `{"chart_data": [{"x": 1, "y": 2}], "chart_spec": {"x_axis": "x", "y_axis": "y"}}`},
	}

	for _, p := range payloads {
		t.Run(p.agent+p.json, func(t *testing.T) {
			data := decode(t, p.json)
			first := Generate(data, p.agent)
			for i := 0; i < 3; i++ {
				if diff := cmp.Diff(first, Generate(data, p.agent)); diff != "" {
					t.Fatalf("layout changed between calls (-first +again):\n%s", diff)
				}
			}
			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(Generate(data, p.agent))
			require.NoError(t, err)
			assert.JSONEq(t, string(a), string(b))
		})
	}
}

func TestParseAgent(t *testing.T) {
	tests := []struct {
		in   string
		want Agent
	}{
		{"data_harvester", AgentHarvester},
		{"Data-Harvester", AgentHarvester},
		{"DATA HARVESTER", AgentHarvester},
		{"trend_analyst", AgentTrendAnalyst},
		{"Forecaster", AgentForecaster},
		{"mcts_optimizer", AgentOptimizer},
		{"MCTS Optimizer", AgentOptimizer},
		{"order-manager", AgentOrderManager},
		{"notifier", AgentNotifier},
		{"Visualizer\t", AgentVisualizer},
		{"", AgentGeneric},
		{"orchestrator", AgentGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAgent(tt.in), "ParseAgent(%q)", tt.in)
	}
	for _, a := range Agents {
		assert.Equal(t, a, ParseAgent(a.String()), "round trip %s", a)
	}
}

func TestStrategy(t *testing.T) {
	tests := []struct {
		data  string
		agent string
		want  string
	}{
		{`{"revenue": 10, "orders": 2}`, "", "key_value"},
		{`[{"a": 1}, {"a": 2}]`, "", "tabular"},
		{`{"summary": {"a": 1}, "rows": [{"a": 1}]}`, "", "nested"},
		{`[[1, 2], [3]]`, "", "json"},
		{`{"anything": 1}`, "notifier", "custom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Strategy(decode(t, tt.data), tt.agent), tt.data)
	}
}

func TestBuilder(t *testing.T) {
	b := newBuilder()
	b.add("x", &TextBlockProps{Content: "1"}, "")
	b.addAt("last", &TextBlockProps{Content: "2"}, WidthHalf, fallbackOrder)
	b.add("x", &TextBlockProps{Content: "3"}, WidthThird)
	b.add("x", &TextBlockProps{Content: "4"}, WidthFull)
	b.add("x-2", &TextBlockProps{Content: "5"}, WidthFull)

	l := b.build()
	assert.Equal(t, []string{"x", "x-2", "x-3", "x-2-2", "last"}, ids(l))
	assert.Equal(t, WidthFull, l.Components[0].Width)
	assert.Equal(t, 99, l.Components[4].Order)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "organic-coffee", slug("Organic Coffee"))
	assert.Equal(t, "revenue-q1", slug("revenue_Q1"))
	assert.Equal(t, "item", slug("!!"))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(decode(t, `{"a": 1, "b": [1, 2]}`), "forecaster")
	b := Fingerprint(map[string]any{"b": []any{1, 2}, "a": 1}, "Forecaster")
	assert.Equal(t, a, b, "key order and number types do not matter")

	assert.NotEqual(t, a, Fingerprint(decode(t, `{"a": 1, "b": [1, 2]}`), "notifier"))
	assert.NotEqual(t, a, Fingerprint(decode(t, `{"a": 2, "b": [1, 2]}`), "forecaster"))
	assert.Equal(t, Fingerprint(nil, "unknown"), Fingerprint(nil, ""), "unknown agents share the generic kind")
	assert.Len(t, a, 36)
}

func TestCatalog(t *testing.T) {
	cat := Catalog()
	require.Len(t, cat, len(ComponentTypes))
	for _, info := range cat {
		assert.True(t, info.Type.Valid())
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Props)
	}
	assert.False(t, ComponentType("Sparkline").Valid())
}

func TestMetrics_JSONKeepsOrder(t *testing.T) {
	m := NewMetrics().Set("Zeta", "1").Set("Alpha", "2").Set("Zeta", "3")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":"3","Alpha":"2"}`, string(data))

	var back Metrics
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(&back))
	assert.False(t, m.Equal(NewMetrics().Set("Alpha", "2").Set("Zeta", "3")))
}
