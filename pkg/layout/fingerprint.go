package layout

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/usestring/artifact-mcp/pkg/payload"
)

var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("artifact://layout"))

// Fingerprint identifies the layout Generate would produce for data and
// agentType. Equal payloads (after number and key normalization) with the
// same agent kind share a fingerprint.
func Fingerprint(data any, agentType string) string {
	canonical, err := json.Marshal(payload.Normalize(data))
	if err != nil {
		canonical = []byte(fmt.Sprintf("%#v", data))
	}

	name := make([]byte, 0, len(canonical)+16)
	name = append(name, ParseAgent(agentType).String()...)
	name = append(name, 0)
	name = append(name, canonical...)
	return uuid.NewSHA1(fingerprintSpace, name).String()
}
