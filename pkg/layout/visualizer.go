package layout

import (
	"strings"

	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// visualizer lays out a chart described by chart_spec over chart_data,
// the scalar spec settings and any additional parameters. Without chart
// data the raw payload is shown instead.
func (g *Generator) visualizer(b *builder, data any) {
	rows, _ := payload.SliceAt(data, "chart_data")
	if len(rows) == 0 {
		b.addAt("json-viewer", &JSONViewerProps{Data: data}, WidthFull, fallbackOrder)
		return
	}

	spec, _ := payload.MapAt(data, "chart_spec")
	chart := &ChartCardProps{
		Data:  rows,
		XKey:  firstString(spec, "x_axis", "x_key"),
		YKey:  firstString(spec, "y_axis", "y_key"),
		Title: payload.StringOr(spec, "Visualization", "title"),
		Type:  chartType(payload.StringOr(spec, "", "chart_type")),
	}
	if chart.XKey == "" || chart.YKey == "" {
		fallback := timeSeriesChart(nil, infer.Infer(rows))
		if chart.XKey == "" {
			chart.XKey = fallback.XKey
		}
		if chart.YKey == "" {
			chart.YKey = fallback.YKey
		}
	}
	b.add("chart", chart, WidthFull)

	config := NewMetrics()
	for _, key := range payload.SortedKeys(spec) {
		v := spec[key]
		if v == nil || !payload.IsScalar(v) {
			continue
		}
		config.Set(infer.Label(key), payload.Text(v))
	}
	if config.Len() > 0 {
		b.add("chart-config", &MetricsGridProps{Metrics: config, Title: "Chart Configuration"}, WidthFull)
	}

	if params, _ := payload.MapAt(spec, "additional_params"); len(params) > 0 {
		b.add("chart-params", &JSONViewerProps{Data: params, Title: "Additional Parameters"}, WidthFull)
	}
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := payload.StringOr(obj, "", key); s != "" {
			return s
		}
	}
	return ""
}

// chartType accepts line, bar or area and defaults to bar.
func chartType(s string) ChartType {
	switch t := ChartType(strings.ToLower(strings.TrimSpace(s))); t {
	case ChartLine, ChartBar, ChartArea:
		return t
	}
	return ChartBar
}
