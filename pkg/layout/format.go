package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/itchyny/timefmt-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/artifact-mcp/pkg/infer"
	"github.com/usestring/artifact-mcp/pkg/payload"
)

const (
	DefaultCurrencySymbol = "₹"
	DefaultMaxRows        = 10

	dateLayout     = "%d %b %Y"
	dateTimeLayout = "%d %b %Y, %H:%M"

	notAvailable = "N/A"
)

// Formatter renders payload values as display strings.
// It is safe for concurrent use.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter returns a formatter grouping digits per tag and prefixing
// currency values with symbol.
func NewFormatter(symbol string, tag language.Tag) *Formatter {
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Value formats v according to a display hint.
func (f *Formatter) Value(v any, format infer.Format) string {
	if v == nil {
		return notAvailable
	}

	switch format {
	case infer.FormatCurrency:
		if n, ok := payload.Float(v); ok {
			return f.Currency(n)
		}
	case infer.FormatPercentage:
		if n, ok := payload.Float(v); ok {
			return f.Percent(n)
		}
	case infer.FormatInteger:
		if n, ok := payload.Float(v); ok {
			return f.Integer(n)
		}
	case infer.FormatDecimal:
		if n, ok := payload.Float(v); ok {
			return f.Decimal(n)
		}
	case infer.FormatDate, infer.FormatDateTime:
		return f.Date(v)
	}
	return payload.Text(v)
}

// Currency renders a symbol-prefixed grouped whole amount: ₹1,500.
func (f *Formatter) Currency(n float64) string {
	return f.symbol + f.Integer(n)
}

// Integer renders n rounded and digit-grouped: 1,500.
func (f *Formatter) Integer(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return notAvailable
	}
	r := math.Round(n)
	if math.Abs(r) < 1<<63 {
		return f.printer.Sprintf("%d", int64(r))
	}
	// Beyond int64; the printer groups floats too.
	return f.printer.Sprintf("%.0f", r)
}

// Percent renders n with one decimal: 12.5%.
func (f *Formatter) Percent(n float64) string {
	return fmt.Sprintf("%.1f%%", n)
}

// Decimal renders n with two decimals: 3.14.
func (f *Formatter) Decimal(n float64) string {
	return fmt.Sprintf("%.2f", n)
}

// Date renders a date-like value as "15 Mar 2024". Unparseable values are
// returned as their raw text.
func (f *Formatter) Date(v any) string {
	return f.timeString(v, dateLayout)
}

// DateTime renders a date-like value as "15 Mar 2024, 10:30". Unparseable
// values are returned as their raw text.
func (f *Formatter) DateTime(v any) string {
	return f.timeString(v, dateTimeLayout)
}

func (f *Formatter) timeString(v any, layout string) string {
	if v == nil {
		return notAvailable
	}
	t, ok := payload.TimeValue(v)
	if !ok {
		return payload.Text(v)
	}
	return timefmt.Format(t, layout)
}

// stripQuotes removes quote characters surrounding s.
func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

var emphasisReplacer = strings.NewReplacer("**", "", "__", "", "*", "", "`", "")

// stripEmphasis removes markdown emphasis markers from s.
func stripEmphasis(s string) string {
	return strings.TrimSpace(emphasisReplacer.Replace(s))
}
