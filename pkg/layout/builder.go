package layout

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// fallbackOrder sorts the raw JSON fallback after everything else.
const fallbackOrder = 99

// builder accumulates components with an explicit running order.
type builder struct {
	order      int
	ids        map[string]int
	components []Component
}

func newBuilder() *builder {
	return &builder{ids: make(map[string]int)}
}

// add appends a component at the next order position.
func (b *builder) add(id string, props Props, width Width) {
	b.order++
	b.addAt(id, props, width, b.order)
}

// addAt appends a component with a fixed order.
func (b *builder) addAt(id string, props Props, width Width, order int) {
	if width == "" {
		width = WidthFull
	}
	b.components = append(b.components, Component{
		ID:        b.uniqueID(id),
		Component: props.ComponentType(),
		Props:     props,
		Width:     width,
		Order:     order,
	})
}

// uniqueID suffixes repeated ids with -2, -3, ...
func (b *builder) uniqueID(id string) string {
	b.ids[id]++
	n := b.ids[id]
	if n == 1 {
		return id
	}
	candidate := fmt.Sprintf("%s-%d", id, n)
	for b.ids[candidate] > 0 {
		n++
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	b.ids[candidate]++
	return candidate
}

func (b *builder) empty() bool { return len(b.components) == 0 }

// build returns the layout with components stably sorted by order.
func (b *builder) build() *Layout {
	components := slices.Clone(b.components)
	if components == nil {
		components = []Component{}
	}
	slices.SortStableFunc(components, func(x, y Component) int {
		return x.Order - y.Order
	})
	return &Layout{Components: components}
}

// slug lowercases s and joins its words with hyphens, for component ids.
func slug(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "item"
	}
	return strings.Join(words, "-")
}
