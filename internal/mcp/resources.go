package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/artifact-mcp/internal/mcp/tools"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

// Resource URI scheme: artifact://
// Supported URIs:
//   artifact://layout/{fingerprint}
//   artifact://components

// ComponentsURI lists the component catalog.
const ComponentsURI = "artifact://components"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.LayoutURIPrefix + "{fingerprint}",
		Name:        "Rendered Layout",
		Description: "A layout produced by artifact_generate_layout, artifact_render_batch or artifact_replay_stream, keyed by fingerprint. Only recently rendered layouts are kept.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceLayout)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         ComponentsURI,
		Name:        "Component Catalog",
		Description: "Every component kind a layout may contain, with its props.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceComponents)
}

// Resource handlers

func (s *Server) handleResourceLayout(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	fingerprint, err := parseLayoutURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if s.deps.Cache == nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	a, ok := s.deps.Cache.Get(fingerprint)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, a)
}

func (s *Server) handleResourceComponents(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, map[string]any{
		"components":            layout.Catalog(),
		"order_approval_marker": layout.OrderApprovalMarker,
	})
}

// Helper functions

// parseLayoutURI extracts the fingerprint from an artifact://layout/ URI.
func parseLayoutURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "artifact://") {
		return "", tools.ErrInvalidInput("invalid URI scheme: expected artifact://")
	}
	fingerprint, ok := strings.CutPrefix(uri, tools.LayoutURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput(fmt.Sprintf("unknown resource: %s", uri))
	}
	if fingerprint == "" || strings.Contains(fingerprint, "/") {
		return "", tools.ErrInvalidInput("layout URI requires a single fingerprint")
	}
	return fingerprint, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
