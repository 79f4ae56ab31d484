// Package tools contains MCP tool implementations for artifact-mcp.
package tools

import (
	"fmt"

	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
	"github.com/usestring/artifact-mcp/pkg/payload"
	"github.com/usestring/artifact-mcp/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// LayoutURIPrefix prefixes cached layout resources.
const LayoutURIPrefix = "artifact://layout/"

// resolvePayload returns the payload value: data as given, or text decoded
// as JSON or YAML. Exactly one of data and text should be set.
func resolvePayload(data any, text, contentType string, maxBytes int) (any, error) {
	if text == "" {
		if data == nil {
			return nil, ErrInvalidInput("either data or text is required")
		}
		return payload.Normalize(data), nil
	}
	if data != nil {
		return nil, ErrInvalidInput("pass either data or text, not both")
	}
	if maxBytes > 0 && len(text) > maxBytes {
		return nil, ErrInvalidInput(fmt.Sprintf("text is %d bytes, limit is %d", len(text), maxBytes))
	}
	v, err := payload.Decode([]byte(text), contentType)
	if err != nil {
		return nil, WrapDecodeError("payload text", err)
	}
	return v, nil
}

// selectPath narrows v with a jq expression when expr is set.
func selectPath(v any, expr string) (any, error) {
	if expr == "" {
		return v, nil
	}
	out, err := payload.Query(v, expr)
	if err != nil {
		return nil, WrapDecodeError("select expression", err)
	}
	return out, nil
}

// layoutRef points at the cached copy of an artifact's layout.
func layoutRef(a artifact.Artifact) types.ResourceRef {
	return types.ResourceRef{
		URI:  LayoutURIPrefix + a.Fingerprint,
		MIME: MimeJSON,
		Hint: "Read to fetch this layout again without re-sending the payload",
	}
}

// kindNames lists the component kinds of l in order.
func kindNames(l *layout.Layout) []string {
	if l == nil {
		return nil
	}
	kinds := l.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
