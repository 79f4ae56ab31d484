package layout

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// Generator builds layouts. The zero value is not usable; call New.
// A Generator holds no per-call state and is safe for concurrent use.
type Generator struct {
	format  *Formatter
	maxRows int
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	symbol  string
	tag     language.Tag
	maxRows int
	logger  *slog.Logger
}

// WithCurrencySymbol sets the prefix used for currency values.
func WithCurrencySymbol(symbol string) Option {
	return func(o *options) { o.symbol = symbol }
}

// WithLanguage sets the locale used for digit grouping.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.tag = tag }
}

// WithMaxRows sets the DataTable maxRows prop.
func WithMaxRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns a Generator.
func New(opts ...Option) *Generator {
	o := options{
		symbol:  DefaultCurrencySymbol,
		tag:     language.English,
		maxRows: DefaultMaxRows,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Generator{
		format:  NewFormatter(o.symbol, o.tag),
		maxRows: o.maxRows,
		logger:  o.logger,
	}
}

// Formatter returns the generator's value formatter.
func (g *Generator) Formatter() *Formatter { return g.format }

var defaultGenerator = New()

// Generate builds a layout with default options.
func Generate(data any, agentType string) *Layout {
	return defaultGenerator.Generate(data, agentType)
}

// Generate builds the layout for data. A recognized agentType selects a
// hand-tuned layout; anything else goes through schema inference.
//
// Generate never fails. Missing or malformed fields degrade to defaults
// or fewer components. Callers handle error and empty payloads first
// (see package artifact).
func (g *Generator) Generate(data any, agentType string) *Layout {
	agent := ParseAgent(agentType)
	if agent != AgentGeneric {
		l := g.custom(agent, data)
		g.logger.Debug("generated custom layout", "agent", agent.String(), "components", len(l.Components))
		return l
	}

	schema := infer.Infer(data)
	b := newBuilder()
	strategy := "json"

	switch {
	case infer.IsKeyValue(data):
		strategy = "key_value"
		b.add("metrics-grid", &MetricsGridProps{Metrics: g.fieldMetrics(data, schema.Fields)}, WidthFull)

	case infer.IsTabular(data):
		strategy = "tabular"
		rows, _ := data.([]any)
		if infer.IsTimeSeries(schema) {
			b.add("time-series-chart", timeSeriesChart(rows, schema), WidthFull)
		}
		b.add("data-table", g.dataTable(rows, schema, ""), WidthFull)

	case schema.Type == infer.TypeObject:
		strategy = "nested"
		g.nested(b, data, schema)

	default:
		b.addAt("json-viewer", &JSONViewerProps{Data: data}, WidthFull, fallbackOrder)
	}

	l := b.build()
	g.logger.Debug("generated layout",
		"strategy", strategy,
		"fields", len(schema.Fields),
		"components", len(l.Components),
	)
	return l
}

// Strategy names the route Generate takes for data: "custom" for a known
// agent, else one of "key_value", "tabular", "nested" or "json".
func Strategy(data any, agentType string) string {
	if ParseAgent(agentType) != AgentGeneric {
		return "custom"
	}
	switch {
	case infer.IsKeyValue(data):
		return "key_value"
	case infer.IsTabular(data):
		return "tabular"
	case infer.Infer(data).Type == infer.TypeObject:
		return "nested"
	}
	return "json"
}

func (g *Generator) custom(agent Agent, data any) *Layout {
	b := newBuilder()
	switch agent {
	case AgentHarvester:
		g.harvester(b, data)
	case AgentTrendAnalyst:
		g.trendAnalyst(b, data)
	case AgentForecaster:
		g.forecaster(b, data)
	case AgentOptimizer:
		g.optimizer(b, data)
	case AgentOrderManager:
		g.orderManager(b, data)
	case AgentNotifier:
		g.notifier(b, data)
	case AgentVisualizer:
		g.visualizer(b, data)
	case AgentGeneric:
	}
	if b.empty() {
		b.addAt("json-viewer", &JSONViewerProps{Data: data}, WidthFull, fallbackOrder)
	}
	return b.build()
}

// fieldMetrics formats the scalar, non-null fields of an object. A scalar
// payload is shown as a single Value metric.
func (g *Generator) fieldMetrics(data any, fields []infer.Field) *Metrics {
	m := NewMetrics()

	obj, ok := data.(map[string]any)
	if !ok {
		if data != nil && payload.IsScalar(data) {
			m.Set("Value", g.format.Value(data, infer.FormatNone))
		}
		return m
	}

	for _, f := range fields {
		v, present := obj[f.Key]
		if !present || v == nil || !payload.IsScalar(v) {
			continue
		}
		m.Set(f.Label, g.format.Value(v, f.Format))
	}
	return m
}

func (g *Generator) dataTable(rows []any, schema *infer.Schema, title string) *DataTableProps {
	columns := make([]Column, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		columns = append(columns, Column{Key: f.Key, Label: f.Label, Format: f.Format})
	}
	return &DataTableProps{
		Data:    rows,
		Columns: columns,
		MaxRows: g.maxRows,
		Title:   title,
	}
}

// timeSeriesChart plots the first numeric field against the first
// date-like field.
func timeSeriesChart(rows []any, schema *infer.Schema) *ChartCardProps {
	props := &ChartCardProps{Data: rows, Title: "Time Series Data", Type: ChartLine}

	if f, ok := infer.DateField(schema); ok {
		props.XKey = f.Key
	} else if len(schema.Fields) > 0 {
		props.XKey = schema.Fields[0].Key
	}
	if nums := infer.NumberFields(schema); len(nums) > 0 {
		props.YKey = nums[0].Key
	} else if len(schema.Fields) > 1 {
		props.YKey = schema.Fields[1].Key
	}
	return props
}

// nested emits a half-width grid per key-value child object and a table
// per tabular child array, falling back to one grid of top-level scalars.
func (g *Generator) nested(b *builder, data any, schema *infer.Schema) {
	obj, _ := data.(map[string]any)

	for _, f := range schema.Fields {
		value := obj[f.Key]
		switch f.Type {
		case infer.TypeObject:
			if infer.IsKeyValue(value) {
				b.add("nested-"+slug(f.Key), &MetricsGridProps{
					Metrics: g.fieldMetrics(value, f.Fields),
					Title:   f.Label,
				}, WidthHalf)
			}
		case infer.TypeArray:
			if infer.IsTabular(value) {
				rows := value.([]any)
				b.add("table-"+slug(f.Key), g.dataTable(rows, infer.Infer(rows), f.Label), WidthFull)
			}
		}
	}

	if b.empty() {
		b.add("metrics-grid", &MetricsGridProps{Metrics: g.fieldMetrics(data, schema.Fields)}, WidthFull)
	}
}
