// Package cache provides caching utilities for the MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/artifact-mcp/pkg/artifact"
	"github.com/usestring/artifact-mcp/pkg/layout"
)

// LayoutCache holds rendered artifacts keyed by fingerprint. Safe for
// concurrent use.
type LayoutCache struct {
	cache  *lru.Cache[string, artifact.Artifact]
	render singleflight.Group
}

// NewLayoutCache creates a new LRU cache with the specified maximum number of items.
func NewLayoutCache(maxItems int) (*LayoutCache, error) {
	c, err := lru.New[string, artifact.Artifact](maxItems)
	if err != nil {
		return nil, err
	}
	return &LayoutCache{cache: c}, nil
}

// Get retrieves an artifact by fingerprint.
func (c *LayoutCache) Get(fingerprint string) (artifact.Artifact, bool) {
	return c.cache.Get(fingerprint)
}

// Put stores a under its own fingerprint.
func (c *LayoutCache) Put(a artifact.Artifact) {
	if a.Fingerprint == "" {
		return
	}
	c.cache.Add(a.Fingerprint, a)
}

// Render returns the cached artifact for (data, agentType) or renders and
// stores it. The second result reports a cache hit. Concurrent misses for
// the same fingerprint share one render. Unrecognized agent names share a
// fingerprint, so the returned Agent is always the caller's agentType.
func (c *LayoutCache) Render(r *artifact.Renderer, data any, agentType string) (artifact.Artifact, bool) {
	fp := layout.Fingerprint(data, agentType)
	if cached, ok := c.cache.Get(fp); ok {
		cached.Agent = agentType
		return cached, true
	}
	if r == nil {
		r = artifact.NewRenderer(nil, nil)
	}
	v, _, _ := c.render.Do(fp, func() (any, error) {
		a := r.Render(data, agentType)
		c.Put(a)
		return a, nil
	})
	a := v.(artifact.Artifact)
	a.Agent = agentType
	return a, false
}

// Fingerprints returns cached keys, oldest first.
func (c *LayoutCache) Fingerprints() []string {
	return c.cache.Keys()
}

// Len returns the current number of items in the cache.
func (c *LayoutCache) Len() int {
	return c.cache.Len()
}
