package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

var errUnknownComponent = errors.New("unknown component")

// UnmarshalJSON decodes a component from its wire form. Props are decoded
// into the struct matching the component type. Unknown types, and props
// that do not decode, become a JsonViewer over the raw props so that one
// bad node never fails a whole layout.
func (c *Component) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        string          `json:"id"`
		Component ComponentType   `json:"component"`
		Props     json.RawMessage `json:"props"`
		Width     Width           `json:"width"`
		Order     int             `json:"order"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	c.ID = wire.ID
	c.Order = wire.Order
	c.Width = wire.Width
	if c.Width == "" {
		c.Width = WidthFull
	}

	props, err := decodeProps(wire.Component, wire.Props)
	if err == nil {
		c.Component = wire.Component
		c.Props = props
		return nil
	}

	title := fmt.Sprintf("Failed to render %s", wire.Component)
	if errors.Is(err, errUnknownComponent) {
		title = fmt.Sprintf("Unknown: %s", wire.Component)
	}
	slog.Warn("component replaced with raw view",
		"id", wire.ID,
		"component", string(wire.Component),
		"error", err,
	)

	c.Component = JSONViewer
	c.Props = &JSONViewerProps{Data: rawValue(wire.Props), Title: title}
	return nil
}

func decodeProps(kind ComponentType, raw json.RawMessage) (Props, error) {
	var props Props
	switch kind {
	case MetricsGrid:
		props = &MetricsGridProps{}
	case DataTable:
		props = &DataTableProps{}
	case ChartCard:
		props = &ChartCardProps{}
	case TextBlock:
		props = &TextBlockProps{}
	case JSONViewer:
		props = &JSONViewerProps{}
	case Alert:
		props = &AlertProps{}
	case ProgressBar:
		props = &ProgressBarProps{}
	default:
		return nil, fmt.Errorf("%w %q", errUnknownComponent, kind)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return props, nil
	}
	if err := json.Unmarshal(raw, props); err != nil {
		return nil, fmt.Errorf("decode %s props: %w", kind, err)
	}
	return props, nil
}

func rawValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// Decode parses a layout from its JSON wire form.
func Decode(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if l.Components == nil {
		l.Components = []Component{}
	}
	return &l, nil
}
