package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Decode parses an agent payload from text.
// JSON is tried first unless the content type names YAML; YAML is accepted
// as a fallback so hand-written fixtures can use either syntax.
func Decode(data []byte, contentType string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	if isYAMLContentType(contentType) {
		return decodeYAML(data)
	}

	var v any
	jsonErr := json.Unmarshal(data, &v)
	if jsonErr == nil {
		return v, nil
	}

	if y, err := decodeYAML(data); err == nil {
		if _, isText := y.(string); !isText {
			return y, nil
		}
	}
	return nil, fmt.Errorf("invalid JSON payload: %w", jsonErr)
}

func isYAMLContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(ct))
	}
	return strings.Contains(mediaType, "yaml") || mediaType == "yml"
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML payload: %w", err)
	}
	return Normalize(v), nil
}

// Normalize converts YAML-decoded trees into the encoding/json shape:
// map keys become strings, every number becomes float64 and timestamps
// become RFC 3339 strings.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339Nano)
	}
	if f, ok := Float(v); ok {
		return f
	}
	return v
}
