package layout

import (
	"fmt"

	"github.com/usestring/artifact-mcp/pkg/payload"
)

// optimizer lays out a cost simulation: baseline against optimized cost
// with the derived savings, then the recommendation text.
func (g *Generator) optimizer(b *builder, data any) {
	stats, _ := payload.MapAt(data, "simulation_stats")
	baseline := payload.FloatOr(stats, 0, "baseline_cost")
	optimized := payload.FloatOr(stats, 0, "optimized_cost")

	b.add("savings", &MetricsGridProps{
		Metrics: NewMetrics().
			Set("Baseline Cost", g.format.Currency(baseline)).
			Set("Optimized Cost", g.format.Currency(optimized)).
			Set("Savings", savings(baseline, optimized)).
			Set("Iterations", g.format.Integer(payload.FloatOr(stats, 0, "iterations"))),
		Variant: VariantSuccess,
	}, WidthFull)

	if text := payload.StringOr(data, "", "interpretation"); text != "" {
		b.add("recommendation", &TextBlockProps{
			Title:   "Recommendation",
			Content: text,
			Variant: VariantInfo,
		}, WidthFull)
	}
}

// savings is (1 - optimized/baseline) * 100 with one decimal, or 0.0%
// when there is no baseline.
func savings(baseline, optimized float64) string {
	if baseline == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", (1-optimized/baseline)*100)
}
