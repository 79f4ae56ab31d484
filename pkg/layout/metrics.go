package layout

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Metrics is an insertion-ordered label to display-string map. It
// marshals as a JSON object whose keys keep insertion order.
type Metrics struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{om: orderedmap.New[string, string]()}
}

// Set stores value under label. Re-setting a label keeps its position.
func (m *Metrics) Set(label, value string) *Metrics {
	m.init()
	m.om.Set(label, value)
	return m
}

func (m *Metrics) Get(label string) (string, bool) {
	if m == nil || m.om == nil {
		return "", false
	}
	return m.om.Get(label)
}

func (m *Metrics) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Labels returns the labels in insertion order.
func (m *Metrics) Labels() []string {
	out := make([]string, 0, m.Len())
	if m.Len() == 0 {
		return out
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Equal compares labels, order and values.
func (m *Metrics) Equal(other *Metrics) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	a, b := m.om.Oldest(), other.om.Oldest()
	for a != nil && b != nil {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}

func (m *Metrics) MarshalJSON() ([]byte, error) {
	m.init()
	return m.om.MarshalJSON()
}

func (m *Metrics) UnmarshalJSON(data []byte) error {
	m.init()
	return m.om.UnmarshalJSON(data)
}

func (m *Metrics) init() {
	if m.om == nil {
		m.om = orderedmap.New[string, string]()
	}
}
