package infer

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/usestring/artifact-mcp/pkg/payload"
)

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// numberFormat picks a display hint from the key name and value.
// Rules are evaluated in order and the first match wins.
func numberFormat(key string, v float64) Format {
	k := strings.ToLower(key)

	switch {
	case containsAny(k, "cost", "price", "revenue"):
		return FormatCurrency
	case containsAny(k, "amount", "value") && v > CurrencyValueThreshold:
		return FormatCurrency
	case containsAny(k, "percent", "rate", "ratio"):
		return FormatPercentage
	case strings.Contains(k, "score") && v <= PercentScoreCeiling:
		return FormatPercentage
	case v == math.Trunc(v) && !math.IsInf(v, 0):
		return FormatInteger
	default:
		return FormatDecimal
	}
}

// stringFormat marks date-named keys whose value parses as a date.
func stringFormat(key, v string) Format {
	k := strings.ToLower(key)
	if !containsAny(k, "date", "time", "timestamp") {
		return FormatNone
	}
	if _, ok := payload.ParseTime(v); !ok {
		return FormatNone
	}
	if strings.Contains(v, "T") || strings.Contains(v, ":") {
		return FormatDateTime
	}
	return FormatDate
}

// Label turns a key into a human-readable label: underscores become
// spaces, camelCase is split and each word is capitalized.
//
//	total_cost   -> Total Cost
//	growthRate   -> Growth Rate
//	customerID   -> Customer ID
func Label(key string) string {
	var b strings.Builder
	var prev rune
	for i, r := range key {
		if r == '_' {
			b.WriteRune(' ')
			prev = ' '
			continue
		}
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	// Casers are stateful, so each call gets its own.
	caser := cases.Title(language.English, cases.NoLower)
	return caser.String(strings.Join(strings.Fields(b.String()), " "))
}
