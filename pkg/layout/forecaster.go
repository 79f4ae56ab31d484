package layout

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// maxForecastPoints caps the points plotted per forecast chart.
const maxForecastPoints = 30

type series struct {
	values        []float64
	labels        []any // raw timestamp per value; nil when absent
	confidence    float64
	hasConfidence bool
	performance   map[string]any
}

// parseSeries accepts a bare array of predictions or an object holding
// predictions (or values), timestamps (or dates), a confidence score and
// performance metrics. Non-numeric predictions are dropped.
func parseSeries(v any) series {
	var s series
	var predictions, timestamps []any

	switch val := v.(type) {
	case []any:
		predictions = val
	case map[string]any:
		predictions, _ = payload.SliceAt(val, "predictions")
		if len(predictions) == 0 {
			predictions, _ = payload.SliceAt(val, "values")
		}
		timestamps, _ = payload.SliceAt(val, "timestamps")
		if len(timestamps) == 0 {
			timestamps, _ = payload.SliceAt(val, "dates")
		}
		s.confidence, s.hasConfidence = payload.FloatAt(val, "confidence_score")
		s.performance, _ = payload.MapAt(val, "performance_metrics")
	}

	for i, p := range predictions {
		n, ok := payload.Float(p)
		if !ok {
			continue
		}
		s.values = append(s.values, n)
		if i < len(timestamps) {
			s.labels = append(s.labels, timestamps[i])
		} else {
			s.labels = append(s.labels, nil)
		}
	}
	return s
}

// forecaster lays out model configuration, a chart and stats grid per
// forecast metric, and the interpretation text.
func (g *Generator) forecaster(b *builder, data any) {
	if cfg, _ := payload.MapAt(data, "model_config"); len(cfg) > 0 {
		if m := g.fieldMetrics(cfg, infer.Infer(cfg).Fields); m.Len() > 0 {
			b.add("model-config", &MetricsGridProps{
				Metrics: m,
				Title:   "Model Configuration",
				Columns: 3,
			}, WidthFull)
		}
	}

	forecasts, _ := payload.MapAt(data, "forecasts")
	for _, metric := range payload.SortedKeys(forecasts) {
		s := parseSeries(forecasts[metric])
		if len(s.values) == 0 {
			continue
		}

		id := "forecast-" + slug(metric)
		title := infer.Label(metric)

		b.add(id, &ChartCardProps{
			Data:  g.forecastPoints(s),
			XKey:  "label",
			YKey:  "value",
			Title: title + " Forecast",
			Type:  ChartArea,
		}, WidthFull)

		stats := NewMetrics()
		if s.hasConfidence {
			c := s.confidence
			if c <= 1 {
				c *= 100
			}
			stats.Set("Confidence", g.format.Percent(c))
		}
		for _, key := range payload.SortedKeys(s.performance) {
			if n, ok := payload.Float(s.performance[key]); ok {
				stats.Set(metricLabel(key), g.format.Decimal(n))
			}
		}
		stats.Set("First Forecast", g.format.Decimal(s.values[0]))
		stats.Set("Last Forecast", g.format.Decimal(s.values[len(s.values)-1]))

		b.add(id+"-stats", &MetricsGridProps{Metrics: stats, Title: title + " Statistics"}, WidthFull)
	}

	if text := stripEmphasis(payload.StringOr(data, "", "interpretation")); text != "" {
		b.add("interpretation", &TextBlockProps{
			Title:   "Interpretation",
			Content: text,
			Variant: VariantInfo,
		}, WidthFull)
	}
}

// forecastPoints labels each point with its formatted timestamp, or
// "Day N" when no timestamp is available.
func (g *Generator) forecastPoints(s series) []any {
	n := min(len(s.values), maxForecastPoints)
	points := make([]any, 0, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("Day %d", i+1)
		if ts := s.labels[i]; ts != nil {
			label = g.format.Date(ts)
		}
		points = append(points, map[string]any{"label": label, "value": s.values[i]})
	}
	return points
}

// metricLabel upper-cases short error-metric names (mae, rmse, mape) and
// labels everything else.
func metricLabel(key string) string {
	if len(key) <= 4 && strings.IndexFunc(key, func(r rune) bool { return !unicode.IsLower(r) && !unicode.IsDigit(r) }) < 0 {
		return strings.ToUpper(key)
	}
	return infer.Label(key)
}
