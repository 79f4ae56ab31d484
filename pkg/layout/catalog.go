package layout

// ComponentInfo documents one display primitive for clients.
type ComponentInfo struct {
	Type        ComponentType `json:"type"`
	Description string        `json:"description"`
	Props       []string      `json:"props"`
}

// Catalog describes every component type in ComponentTypes order.
func Catalog() []ComponentInfo {
	out := make([]ComponentInfo, 0, len(ComponentTypes))
	for _, t := range ComponentTypes {
		out = append(out, describe(t))
	}
	return out
}

func describe(t ComponentType) ComponentInfo {
	switch t {
	case MetricsGrid:
		return ComponentInfo{t, "Grid of labelled display values", []string{"metrics", "title", "variant", "columns"}}
	case DataTable:
		return ComponentInfo{t, "Table of row objects", []string{"data", "columns", "maxRows", "title"}}
	case ChartCard:
		return ComponentInfo{t, "Line, bar or area chart over row objects", []string{"data", "xKey", "yKey", "title", "type", "color"}}
	case TextBlock:
		return ComponentInfo{t, "Paragraph or bullet list", []string{"title", "content", "items", "variant"}}
	case JSONViewer:
		return ComponentInfo{t, "Raw JSON tree; also the fallback for unknown components", []string{"data", "title"}}
	case Alert:
		return ComponentInfo{t, "Status banner", []string{"type", "title", "message"}}
	case ProgressBar:
		return ComponentInfo{t, "Progress towards a maximum", []string{"value", "label", "max"}}
	}
	return ComponentInfo{Type: t, Props: []string{}}
}
