// Package layout turns agent payloads into declarative UI layouts.
//
// A Layout is an ordered list of Components. Each Component names one of a
// fixed set of display primitives and carries that primitive's typed
// props. Known agent kinds get hand-tuned layouts; everything else goes
// through schema inference and a generic strategy.
package layout

import (
	"github.com/usestring/artifact-mcp/pkg/infer"
)

// ComponentType is the closed set of display primitives.
type ComponentType string

const (
	MetricsGrid ComponentType = "MetricsGrid"
	DataTable   ComponentType = "DataTable"
	ChartCard   ComponentType = "ChartCard"
	TextBlock   ComponentType = "TextBlock"
	JSONViewer  ComponentType = "JsonViewer"
	Alert       ComponentType = "Alert"
	ProgressBar ComponentType = "ProgressBar"
)

// ComponentTypes lists every primitive in catalog order.
var ComponentTypes = []ComponentType{
	MetricsGrid, DataTable, ChartCard, TextBlock, JSONViewer, Alert, ProgressBar,
}

// Valid reports whether t is a known primitive.
func (t ComponentType) Valid() bool {
	switch t {
	case MetricsGrid, DataTable, ChartCard, TextBlock, JSONViewer, Alert, ProgressBar:
		return true
	}
	return false
}

// Width is the horizontal span of a component.
type Width string

const (
	WidthFull  Width = "full"
	WidthHalf  Width = "half"
	WidthThird Width = "third"
)

// MarshalText renders the zero Width as full.
func (w Width) MarshalText() ([]byte, error) {
	if w == "" {
		return []byte(WidthFull), nil
	}
	return []byte(w), nil
}

// Variant styles metrics grids and text blocks.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantPrimary Variant = "primary"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// AlertType is the severity of an Alert.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertSuccess AlertType = "success"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// ChartType is the series style of a ChartCard.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartArea ChartType = "area"
)

// OrderApprovalMarker is emitted as TextBlock content where the client
// must place its approve/reject controls. Clients match it exactly.
const OrderApprovalMarker = "__ORDER_APPROVAL_ACTIONS__"

// Props is implemented by the props struct of each ComponentType.
type Props interface {
	ComponentType() ComponentType
}

type MetricsGridProps struct {
	Metrics *Metrics `json:"metrics"`
	Title   string   `json:"title,omitempty"`
	Variant Variant  `json:"variant,omitempty"`
	Columns int      `json:"columns,omitempty"` // 2, 3 or 4
}

// Column describes one DataTable column.
type Column struct {
	Key    string       `json:"key"`
	Label  string       `json:"label"`
	Format infer.Format `json:"format,omitempty"`
}

type DataTableProps struct {
	Data    []any    `json:"data"`
	Columns []Column `json:"columns"`
	MaxRows int      `json:"maxRows,omitempty"`
	Title   string   `json:"title,omitempty"`
}

type ChartCardProps struct {
	Data  []any     `json:"data"`
	XKey  string    `json:"xKey"`
	YKey  string    `json:"yKey"`
	Title string    `json:"title,omitempty"`
	Type  ChartType `json:"type,omitempty"`
	Color string    `json:"color,omitempty"`
}

type TextBlockProps struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
	Variant Variant  `json:"variant,omitempty"`
}

type JSONViewerProps struct {
	Data  any    `json:"data"`
	Title string `json:"title,omitempty"`
}

type AlertProps struct {
	Type    AlertType `json:"type"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
}

type ProgressBarProps struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
	Max   float64 `json:"max,omitempty"`
}

func (*MetricsGridProps) ComponentType() ComponentType { return MetricsGrid }
func (*DataTableProps) ComponentType() ComponentType   { return DataTable }
func (*ChartCardProps) ComponentType() ComponentType   { return ChartCard }
func (*TextBlockProps) ComponentType() ComponentType   { return TextBlock }
func (*JSONViewerProps) ComponentType() ComponentType  { return JSONViewer }
func (*AlertProps) ComponentType() ComponentType       { return Alert }
func (*ProgressBarProps) ComponentType() ComponentType { return ProgressBar }

// Component is one node of a layout.
type Component struct {
	ID        string        `json:"id"`
	Component ComponentType `json:"component"`
	Props     Props         `json:"props"`
	Width     Width         `json:"width"`
	Order     int           `json:"order"`
}

// Layout is the rendered UI tree for one payload.
type Layout struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Components  []Component `json:"components"`
}

// Kinds returns the component type of each component, in order.
func (l *Layout) Kinds() []ComponentType {
	out := make([]ComponentType, 0, len(l.Components))
	for _, c := range l.Components {
		out = append(out, c.Component)
	}
	return out
}

// Find returns the first component with the given id.
func (l *Layout) Find(id string) (Component, bool) {
	for _, c := range l.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}
