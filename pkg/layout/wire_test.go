package layout

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/usestring/artifact-mcp/pkg/infer"
)

func TestDecode_RoundTrip(t *testing.T) {
	original := Generate(decode(t, `{"order_details": {"quantity": 2, "vendor": "Acme"}, "plan": "Buy"}`), "order_manager")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(original, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_UnknownComponent(t *testing.T) {
	l, err := Decode([]byte(`{"components": [
		{"id": "spark", "component": "Sparkline", "props": {"points": [1, 2]}, "order": 3},
		{"id": "bad", "component": "Alert", "props": {"type": 7}, "width": "half", "order": 4},
		{"id": "ok", "component": "ProgressBar", "props": {"value": 40, "max": 100}, "width": "third", "order": 5}
	]}`))
	require.NoError(t, err)
	require.Len(t, l.Components, 3)

	spark := l.Components[0]
	assert.Equal(t, JSONViewer, spark.Component)
	assert.Equal(t, WidthFull, spark.Width)
	assert.Equal(t, &JSONViewerProps{
		Data:  map[string]any{"points": []any{1.0, 2.0}},
		Title: "Unknown: Sparkline",
	}, spark.Props)

	bad := l.Components[1]
	assert.Equal(t, JSONViewer, bad.Component)
	assert.Equal(t, "Failed to render Alert", bad.Props.(*JSONViewerProps).Title)
	assert.Equal(t, WidthHalf, bad.Width)

	ok := l.Components[2]
	assert.Equal(t, ProgressBar, ok.Component)
	assert.Equal(t, &ProgressBarProps{Value: 40, Max: 100}, ok.Props)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"components": 5}`))
	assert.Error(t, err)

	l, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, l.Components)
}

func TestWidth_ZeroMarshalsFull(t *testing.T) {
	data, err := json.Marshal(Component{ID: "a", Component: Alert, Props: &AlertProps{Type: AlertInfo, Message: "m"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","component":"Alert","props":{"type":"info","message":"m"},"width":"full","order":0}`, string(data))
}

func TestFormatter_Value(t *testing.T) {
	f := NewFormatter("₹", language.English)

	tests := []struct {
		in     any
		format string
		want   string
	}{
		{1500.0, "currency", "₹1,500"},
		{1500.6, "currency", "₹1,501"},
		{1234567.0, "integer", "1,234,567"},
		{12.345, "percentage", "12.3%"},
		{3.14159, "decimal", "3.14"},
		{"2024-03-15", "date", "15 Mar 2024"},
		{"2024-03-15T10:30:00Z", "datetime", "15 Mar 2024"},
		{"soon", "date", "soon"},
		{"x", "currency", "x"},
		{nil, "currency", "N/A"},
		{true, "", "true"},
		{7.0, "", "7"},
		{1e20, "integer", "100,000,000,000,000,000,000"},
		{1e20, "currency", "₹100,000,000,000,000,000,000"},
		{-1e19, "integer", "-10,000,000,000,000,000,000"},
		{9.2e18, "integer", "9,200,000,000,000,000,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Value(tt.in, infer.Format(tt.format)), "Value(%#v, %s)", tt.in, tt.format)
	}

	assert.Equal(t, "$12", NewFormatter("$", language.English).Currency(12.2))
	assert.Equal(t, "15 Mar 2024, 10:30", f.DateTime("2024-03-15T10:30:00Z"))
}

func TestGenerator_Options(t *testing.T) {
	g := New(WithCurrencySymbol("$"), WithMaxRows(25), WithMaxRows(-1))

	l := g.Generate(decode(t, `[{"price": 10}, {"price": 20}]`), "")
	table := l.Components[0].Props.(*DataTableProps)
	assert.Equal(t, 25, table.MaxRows)

	l = g.Generate(decode(t, `{"price": 1999}`), "")
	assert.Equal(t, "$1,999", metric(t, l.Components[0], "Price"))
}
