package payload

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"
)

const queryCacheSize = 128

// compiled holds parsed jq programs keyed by expression text.
var compiled = mustQueryCache()

func mustQueryCache() *lru.Cache[string, *gojq.Code] {
	c, err := lru.New[string, *gojq.Code](queryCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// Compile parses and compiles a jq expression, reusing cached programs.
func Compile(expression string) (*gojq.Code, error) {
	if code, ok := compiled.Get(expression); ok {
		return code, nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	compiled.Add(expression, code)
	return code, nil
}

// Query runs a jq expression against v and returns its first result.
// A query producing no output returns (nil, nil).
func Query(v any, expression string) (any, error) {
	code, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	iter := code.Run(Normalize(v))
	out, ok := iter.Next()
	if !ok {
		return nil, nil
	}
	if err, isErr := out.(error); isErr {
		return nil, fmt.Errorf("jq: %w", err)
	}
	return out, nil
}

// QueryFloat runs expression and converts the result to a number,
// falling back to def on any error or non-numeric result.
func QueryFloat(v any, expression string, def float64) float64 {
	out, err := Query(v, expression)
	if err != nil {
		return def
	}
	if f, ok := Float(out); ok {
		return f
	}
	return def
}
