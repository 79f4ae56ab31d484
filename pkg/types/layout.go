package types

// GenerateLayoutOutput is the output type for the artifact_generate_layout tool.
type GenerateLayoutOutput struct {
	Agent       string      `json:"agent"`
	Status      string      `json:"status"`
	Fingerprint string      `json:"fingerprint"`
	Cached      bool        `json:"cached"`
	Components  []string    `json:"components,omitempty"`
	Layout      any         `json:"layout"`
	Resource    ResourceRef `json:"resource"`
}

// RenderBatchOutput is the output type for the artifact_render_batch tool.
type RenderBatchOutput struct {
	Artifacts []BatchArtifact `json:"artifacts,omitzero"`
	Summary   BatchSummary    `json:"summary"`
}

// BatchArtifact is one rendered item, in input order.
type BatchArtifact struct {
	Index       int    `json:"index"`
	Agent       string `json:"agent"`
	Status      string `json:"status"`
	Fingerprint string `json:"fingerprint"`
	Layout      any    `json:"layout"`
}

// BatchSummary counts batch results by status.
type BatchSummary struct {
	Total  int `json:"total"`
	OK     int `json:"ok"`
	Failed int `json:"failed"`
	Empty  int `json:"empty"`
}

// ReplayStreamOutput is the output type for the artifact_replay_stream tool.
type ReplayStreamOutput struct {
	Events   int           `json:"events"`
	Skipped  int           `json:"skipped"`
	Ended    bool          `json:"ended"`
	Workflow WorkflowState `json:"workflow"`
	Agents   []AgentResult `json:"agents,omitzero"`
}

// WorkflowState is the final workflow status seen in a stream.
type WorkflowState struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// AgentResult is one agent's final state and its rendered artifact.
type AgentResult struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Progress    float64 `json:"progress"`
	Activity    string  `json:"activity,omitempty"`
	Error       string  `json:"error,omitempty"`
	Status      string  `json:"status"`
	Fingerprint string  `json:"fingerprint"`
	Layout      any     `json:"layout,omitempty"`
}
