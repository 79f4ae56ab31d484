package layout

import (
	"fmt"
	"math"

	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// trendAnalyst lays out market trend analysis: a metadata bar, one grid
// per internal metric and per external keyword, then the narrative lists.
func (g *Generator) trendAnalyst(b *builder, data any) {
	meta, _ := payload.MapAt(data, "metadata")

	sentiment := payload.StringOr(meta, "", "sentiment")
	if sentiment == "" {
		sentiment = payload.StringOr(meta, "", "market_sentiment")
	}
	if sentiment == "" {
		sentiment = payload.StringOr(data, notAvailable, "market_sentiment")
	}

	analyzed := notAvailable
	if ts, ok := payload.Get(meta, "analysis_timestamp"); ok && ts != nil {
		analyzed = g.format.DateTime(ts)
	}

	b.add("trend-metadata", &MetricsGridProps{
		Metrics: NewMetrics().
			Set("Sample Size", g.format.Integer(payload.FloatOr(meta, 0, "sample_size"))).
			Set("Analyzed", analyzed).
			Set("Sentiment", sentiment),
		Variant: VariantPrimary,
		Columns: 3,
	}, WidthFull)

	internal, _ := payload.MapAt(data, "internal_trends")
	for _, metric := range payload.SortedKeys(internal) {
		trend, ok := internal[metric].(map[string]any)
		if !ok {
			continue
		}
		b.add("internal-"+slug(metric), &MetricsGridProps{
			Metrics: NewMetrics().
				Set("Direction", payload.StringOr(trend, notAvailable, "direction")).
				Set("Volatility", optionalNumber(trend, "volatility", g.format.Decimal)).
				Set("Growth Rate", optionalNumber(trend, "growth_rate", g.format.Percent)).
				Set("Anomalies", g.format.Integer(payload.FloatOr(trend, 0, "anomaly_count"))),
			Title: infer.Label(metric),
		}, WidthHalf)
	}

	external, _ := payload.MapAt(data, "external_trends")
	for _, keyword := range payload.SortedKeys(external) {
		trend, ok := external[keyword].(map[string]any)
		if !ok {
			continue
		}
		b.add("external-"+slug(keyword), &MetricsGridProps{
			Metrics: NewMetrics().
				Set("Current Interest", g.format.Integer(payload.FloatOr(trend, 0, "current_interest"))).
				Set("Peak Interest", g.format.Integer(payload.FloatOr(trend, 0, "peak_interest"))).
				Set("Change", optionalNumber(trend, "change_percent", signedPercent)).
				Set("Trend", payload.StringOr(trend, notAvailable, "trend")),
			Title: keyword,
		}, WidthHalf)
	}

	sections := []struct {
		id, key, title string
		variant        Variant
		confidence     bool
	}{
		{"findings", "key_findings", "Key Findings", VariantDefault, false},
		{"opportunities", "opportunities", "Opportunities", VariantSuccess, true},
		{"risks", "risks", "Risks", VariantWarning, true},
		{"recommendations", "recommendations", "Recommendations", VariantInfo, false},
	}
	for _, s := range sections {
		list, _ := payload.SliceAt(data, s.key)
		items := textItems(list)
		if s.confidence {
			items = confidenceItems(list)
		}
		if len(items) == 0 {
			continue
		}
		b.add(s.id, &TextBlockProps{Title: s.title, Items: items, Variant: s.variant}, WidthFull)
	}
}

// optionalNumber formats a numeric field, or N/A when it is absent.
func optionalNumber(obj map[string]any, key string, format func(float64) string) string {
	n, ok := payload.FloatAt(obj, key)
	if !ok {
		return notAvailable
	}
	return format(n)
}

func signedPercent(n float64) string {
	return fmt.Sprintf("%+.1f%%", n)
}

// confidenceItems renders opportunity and risk entries. Entries are
// strings or objects with a description (or title) and a confidence,
// which is a fraction when at most 1.
func confidenceItems(list []any) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			if s := payload.Text(item); s != "" {
				out = append(out, s)
			}
			continue
		}

		text := payload.StringOr(obj, payload.StringOr(obj, "", "title"), "description")
		if text == "" {
			text = payload.Text(obj)
		}
		if c, ok := payload.FloatAt(obj, "confidence"); ok {
			if c <= 1 {
				c *= 100
			}
			text = fmt.Sprintf("[%d%%] %s", int(math.Round(c)), text)
		}
		out = append(out, text)
	}
	return out
}
