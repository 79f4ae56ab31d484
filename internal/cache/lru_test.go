package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/artifact-mcp/pkg/artifact"
)

func TestLayoutCache_Render(t *testing.T) {
	c, err := NewLayoutCache(2)
	require.NoError(t, err)

	data := map[string]any{"revenue": 1200.0, "orders": 4.0}
	first, hit := c.Render(nil, data, "")
	assert.False(t, hit)
	assert.Equal(t, artifact.StatusOK, first.Status)

	second, hit := c.Render(nil, map[string]any{"orders": 4.0, "revenue": 1200.0}, "")
	assert.True(t, hit)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	got, ok := c.Get(first.Fingerprint)
	require.True(t, ok)
	assert.Equal(t, first.Layout, got.Layout)
}

func TestLayoutCache_Evicts(t *testing.T) {
	c, err := NewLayoutCache(2)
	require.NoError(t, err)

	a, _ := c.Render(nil, map[string]any{"a": 1.0}, "")
	b, _ := c.Render(nil, map[string]any{"b": 1.0}, "")
	d, _ := c.Render(nil, map[string]any{"d": 1.0}, "")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(a.Fingerprint)
	assert.False(t, ok)
	assert.Equal(t, []string{b.Fingerprint, d.Fingerprint}, c.Fingerprints())
}

func TestLayoutCache_PutIgnoresMissingFingerprint(t *testing.T) {
	c, err := NewLayoutCache(4)
	require.NoError(t, err)
	c.Put(artifact.Artifact{})
	assert.Zero(t, c.Len())
}

func TestNewLayoutCache_InvalidSize(t *testing.T) {
	_, err := NewLayoutCache(0)
	assert.Error(t, err)
}

func TestLayoutCache_ConcurrentRender(t *testing.T) {
	c, err := NewLayoutCache(8)
	require.NoError(t, err)

	data := []any{
		map[string]any{"date": "2024-01-01", "sales": 10.0},
		map[string]any{"date": "2024-01-02", "sales": 12.0},
	}

	var wg sync.WaitGroup
	fps := make([]string, 16)
	for i := range fps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, _ := c.Render(nil, data, "trend_analyst")
			fps[i] = a.Fingerprint
		}(i)
	}
	wg.Wait()

	for _, fp := range fps {
		assert.Equal(t, fps[0], fp)
	}
	assert.Equal(t, 1, c.Len())
}

func TestLayoutCache_RenderKeepsCallerAgent(t *testing.T) {
	c, err := NewLayoutCache(4)
	require.NoError(t, err)

	data := map[string]any{"revenue": 1200.0}
	first, hit := c.Render(nil, data, "foo")
	require.False(t, hit)
	assert.Equal(t, "foo", first.Agent)

	second, hit := c.Render(nil, data, "bar")
	require.True(t, hit)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, "bar", second.Agent)

	third, hit := c.Render(nil, data, "foo")
	require.True(t, hit)
	assert.Equal(t, "foo", third.Agent)
}
