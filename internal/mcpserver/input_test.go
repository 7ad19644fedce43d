package mcpserver

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/internal/testutil"
)

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFile(t, "sample.yaml", testutil.SampleSpecYAML)

	result, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Sample Full API", result.model.Title)
	assert.Equal(t, 6, result.model.EndpointCount())
	assert.Len(t, result.model.Components, 5)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()

	result, err := specInput{Content: testutil.PetstoreJSON}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", result.doc.SpecVersion())
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided (got 0)")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	_, err := specInput{File: "foo.yaml", Content: "bar"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(got 2)")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve()
	assert.Error(t, err)
	assert.Equal(t, 0, specCache.size(), "failed loads are not cached")
}

func TestSpecInput_ResolveInvalidContent(t *testing.T) {
	specCache.reset()
	_, err := specInput{Content: "openapi: [unclosed"}.resolve()
	assert.Error(t, err)
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := specInput{Content: strings.Repeat("a", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempFile(t, "sample.yaml", testutil.SampleSpecYAML)}

	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()

	path := testutil.WriteTempFile(t, "spec.yaml", `openapi: "3.0.0"
info:
  title: Test V1
  version: "1.0"
paths: {}
`)
	input := specInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Test V1", result1.model.Title)

	require.NoError(t, os.WriteFile(path, []byte(`openapi: "3.0.0"
info:
  title: Test V2
  version: "2.0"
paths: {}
`), 0600))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "Test V2", result2.model.Title)
}

func TestSpecCache_ContentHash(t *testing.T) {
	specCache.reset()
	input := specInput{Content: testutil.Swagger2YAML}

	result1, err := input.resolve()
	require.NoError(t, err)

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2)
}

func TestSpecCache_Disabled(t *testing.T) {
	specCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	input := specInput{Content: testutil.Swagger2YAML}
	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)

	assert.NotSame(t, result1, result2)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_Expiry(t *testing.T) {
	specCache.reset()
	spec := &loadedSpec{}

	specCache.put("content:expired", spec, -time.Second)
	assert.Nil(t, specCache.get("content:expired"))
	assert.Equal(t, 0, specCache.size(), "expired entries are removed on lookup")

	specCache.put("content:live", spec, time.Minute)
	assert.Same(t, spec, specCache.get("content:live"))
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()

	// Insert one more spec than the cache holds.
	var firstKey string
	for i := range specCache.maxSize + 1 {
		input := specInput{Content: `openapi: "3.0.0"
info:
  title: "Spec ` + string(rune('A'+i)) + `"
  version: "1.0"
paths: {}
`}
		if i == 0 {
			firstKey, _ = input.cacheKey()
		}
		_, err := input.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, specCache.maxSize, specCache.size())
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSpecInput_CacheKey(t *testing.T) {
	path := testutil.WriteTempFile(t, "sample.yaml", testutil.SampleSpecYAML)

	key, ttl := specInput{File: path}.cacheKey()
	assert.True(t, strings.HasPrefix(key, "file:"))
	assert.Equal(t, cfg.CacheFileTTL, ttl)

	key, ttl = specInput{URL: "https://example.com/openapi.yaml"}.cacheKey()
	assert.Equal(t, "url:https://example.com/openapi.yaml", key)
	assert.Equal(t, cfg.CacheURLTTL, ttl)

	key, _ = specInput{Content: "a"}.cacheKey()
	assert.True(t, strings.HasPrefix(key, "content:"))

	key, _ = specInput{File: "/nonexistent/path.yaml"}.cacheKey()
	assert.Empty(t, key, "missing files are not cached")
}
