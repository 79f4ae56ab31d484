package layout

import (
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// missingValuesExpr sums the numeric per-column missing counts.
const missingValuesExpr = `[.profile.original.missing_values // {} | .[] | numbers] | add // 0`

// harvester lays out a data-cleaning profile: quality metrics, the list of
// cleaning operations and the cleaned column types.
func (g *Generator) harvester(b *builder, data any) {
	profile, _ := payload.MapAt(data, "profile")

	metrics := NewMetrics().
		Set("Quality Score", payload.Text(payload.FloatOr(profile, 0, "improvement_score"))+"%").
		Set("Rows Processed", g.format.Integer(payload.FloatOr(profile, 0, "cleaned", "shape", "rows"))).
		Set("Columns", g.format.Integer(payload.FloatOr(profile, 0, "cleaned", "shape", "cols"))).
		Set("Missing Values", g.format.Integer(payload.QueryFloat(data, missingValuesExpr, 0)))

	b.add("metrics", &MetricsGridProps{Metrics: metrics, Variant: VariantPrimary}, WidthFull)

	if ops, _ := payload.SliceAt(profile, "cleaning_operations"); len(ops) > 0 {
		b.add("operations", &TextBlockProps{
			Title: "Cleaning Operations",
			Items: textItems(ops),
		}, WidthFull)
	}

	if dtypes, _ := payload.MapAt(profile, "cleaned", "dtypes"); len(dtypes) > 0 {
		rows := make([]any, 0, len(dtypes))
		for _, column := range payload.SortedKeys(dtypes) {
			rows = append(rows, map[string]any{
				"column": column,
				"dtype":  payload.Text(dtypes[column]),
			})
		}
		b.add("dtypes", &DataTableProps{
			Data: rows,
			Columns: []Column{
				{Key: "column", Label: "Column"},
				{Key: "dtype", Label: "Data Type"},
			},
			MaxRows: g.maxRows,
			Title:   "Column Types",
		}, WidthFull)
	}
}

// textItems renders list entries as display strings, skipping empties.
func textItems(list []any) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := payload.Text(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
