package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestParse_AliasToEnclosingNode(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		anchor string
	}{
		{
			name: "schema listing itself",
			src: `openapi: 3.0.0
info: {title: Loop, version: "1"}
paths: {}
components:
  schemas:
    Loop: &a
      allOf:
        - *a
`,
			line:   8,
			anchor: "*a",
		},
		{
			name:   "path item merging itself",
			src:    "paths:\n  /a: &p\n    <<: *p\n    get: {summary: x}\n",
			line:   3,
			anchor: "*p",
		},
		{
			name:   "sequence holding itself",
			src:    "x-list: &l [1, [2, *l]]\n",
			line:   1,
			anchor: "*l",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)

			var pe *oaserrors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "yaml", pe.Format)
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, pe.Message, tt.anchor)
		})
	}
}

func TestParse_SharedAliasesAllowed(t *testing.T) {
	src := `openapi: 3.0.0
info: {title: Shared, version: "1"}
paths:
  /a: &item
    get: {summary: first}
  /b:
    <<: *item
    post: {summary: second}
components:
  schemas:
    Base: &base
      type: object
      properties:
        id: {type: string}
    Copy: *base
    Pair:
      allOf: [*base, *base]
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Len(t, doc.Schemas(), 3)
	assert.Equal(t, 3, doc.Stats().OperationCount)

	dump, err := doc.Schemas()[2].Node().MarshalJSONIndent()
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(dump), `"id"`))
}

func TestParse_ExcessiveAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i < 9; i++ {
		ref := fmt.Sprintf("*a%d", i-1)
		fmt.Fprintf(&b, "a%d: &a%d [%s]\n", i, i, strings.Join([]string{ref, ref, ref, ref, ref, ref, ref, ref, ref, ref}, ", "))
	}
	require.Less(t, b.Len(), 1024)

	_, err := Parse([]byte(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	var le *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "aliases", le.ResourceType)
	assert.Contains(t, le.Error(), "excessive aliasing")
}

func TestCheckTree_AliasNodeLimit(t *testing.T) {
	// 2000 uses of one anchored scalar.
	var b strings.Builder
	b.WriteString("v: &v x\nlist:\n")
	for range 2000 {
		b.WriteString("  - *v\n")
	}
	var raw yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(b.String()), &raw))

	assert.NoError(t, checkTree(&raw, "bytes", defaultTreeLimits))

	err := checkTree(&raw, "bytes", treeLimits{maxDepth: MaxNestingDepth, maxAliasNodes: 1000})
	var le *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "aliases", le.ResourceType)
	assert.Equal(t, int64(1000), le.Limit)
}

func TestCheckTree_DepthCountsAliases(t *testing.T) {
	src := "a: &a [[x]]\nb: &b [*a]\nc: [*b]\n"
	var raw yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &raw))

	assert.NoError(t, checkTree(&raw, "bytes", treeLimits{maxDepth: 6, maxAliasNodes: 100}))

	err := checkTree(&raw, "bytes", treeLimits{maxDepth: 5, maxAliasNodes: 100})
	var le *oaserrors.ResourceLimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "depth", le.ResourceType)
	assert.Equal(t, int64(5), le.Limit)
}

func TestParse_JSONNestingLimit(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		ok    bool
	}{
		{"shallow", 100, true},
		{"at limit", MaxNestingDepth + 1, true},
		{"past limit", MaxNestingDepth + 2, false},
		{"megabyte of brackets", 1 << 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Repeat("[", tt.depth) + strings.Repeat("]", tt.depth)
			doc, err := Parse([]byte(src))
			if tt.ok {
				require.NoError(t, err)
				assert.Empty(t, doc.Paths())
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

			var le *oaserrors.ResourceLimitError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, "depth", le.ResourceType)
			assert.Equal(t, int64(MaxNestingDepth), le.Limit)
		})
	}
}
