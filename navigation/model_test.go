package navigation

import (
	"testing"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestBuild_SampleSpec(t *testing.T) {
	m := Build(parse(t, testutil.SampleSpecYAML))

	assert.Equal(t, "Sample Full API", m.Title)
	require.Len(t, m.Tags, 3)
	assert.Equal(t, "users", m.Tags[0].Name)
	assert.Equal(t, "Operations about users", m.Tags[0].Description)
	assert.Equal(t, []Endpoint{
		{Path: "/users", Method: "get", Summary: "List all users", Anchor: "get--users", OperationID: "listUsers"},
		{Path: "/users/{userId}", Method: "get", Summary: "Get a user", Anchor: "get--users--userId-", OperationID: "getUser"},
		{Path: "/users/{userId}", Method: "delete", Summary: "Delete a user", Anchor: "delete--users--userId-", OperationID: "deleteUser"},
	}, m.Tags[0].Endpoints)

	assert.Equal(t, "products", m.Tags[1].Name)
	require.Len(t, m.Tags[1].Endpoints, 1)
	assert.Equal(t, "post--products", m.Tags[1].Endpoints[0].Anchor)

	assert.Equal(t, "orders", m.Tags[2].Name)
	require.Len(t, m.Tags[2].Endpoints, 2)
	assert.Equal(t, "get", m.Tags[2].Endpoints[0].Method)
	assert.Equal(t, "post", m.Tags[2].Endpoints[1].Method)

	var names []string
	for _, c := range m.Components {
		names = append(names, c.Name)
		assert.Equal(t, c.Name, c.Anchor)
	}
	assert.Equal(t, []string{"User", "Product", "Order", "OrderItem", "NewOrder"}, names)
	assert.Equal(t, 6, m.EndpointCount())
}

func TestGroupByTag_GeneralBucket(t *testing.T) {
	doc := parse(t, `
paths:
  /a:
    get:
      summary: untagged
  /b:
    post:
      tags: [x]
      summary: tagged
`)
	groups := GroupByTag(doc.PathsNode())

	require.Len(t, groups, 2)
	assert.Equal(t, "General", groups[0].Name)
	assert.Equal(t, "untagged", groups[0].Endpoints[0].Summary)
	assert.Equal(t, "x", groups[1].Name)
}

func TestGroupByTag_FansOutOverTags(t *testing.T) {
	doc := parse(t, `
paths:
  /pets:
    get:
      tags: [pets, store]
      operationId: listPets
    post:
      tags: [store]
`)
	groups := GroupByTag(doc.PathsNode())

	require.Len(t, groups, 2)
	assert.Equal(t, "pets", groups[0].Name)
	assert.Len(t, groups[0].Endpoints, 1)
	assert.Equal(t, "store", groups[1].Name)
	require.Len(t, groups[1].Endpoints, 2)
	assert.Equal(t, groups[0].Endpoints[0], groups[1].Endpoints[0])
	assert.Equal(t, "listPets", groups[1].Endpoints[0].Summary)
	assert.Equal(t, "", groups[1].Endpoints[1].Summary)

	m := Build(doc)
	assert.Equal(t, 2, m.EndpointCount())
	assert.Equal(t, []string{"get--pets", "post--pets"}, m.Anchors())
}

func TestGroupByTag_IgnoresNonMethodKeys(t *testing.T) {
	doc := parse(t, `
paths:
  /a:
    summary: path summary
    parameters: []
    x-internal: true
    trace: {}
    GET: {}
    head: {}
`)
	groups := GroupByTag(doc.PathsNode())

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Endpoints, 1)
	assert.Equal(t, "head", groups[0].Endpoints[0].Method)
}

func TestGroupByTag_TagOrderIsFirstEncounter(t *testing.T) {
	doc := parse(t, `
paths:
  /z:
    get: {tags: [zeta]}
  /a:
    get: {tags: [alpha, zeta]}
`)
	groups := GroupByTag(doc.PathsNode())

	require.Len(t, groups, 2)
	assert.Equal(t, "zeta", groups[0].Name)
	assert.Equal(t, "alpha", groups[1].Name)
	assert.Len(t, groups[0].Endpoints, 2)
}

func TestGroupByTag_Idempotent(t *testing.T) {
	doc := parse(t, testutil.SampleSpecYAML)
	assert.Equal(t, GroupByTag(doc.PathsNode()), GroupByTag(doc.PathsNode()))
}

func TestGroupByTag_NoPaths(t *testing.T) {
	assert.Empty(t, GroupByTag(nil))
	assert.Empty(t, GroupByTag(parse(t, "paths: {}").PathsNode()))
}

func TestBuild_Lookups(t *testing.T) {
	m := Build(parse(t, testutil.SampleSpecYAML))

	ep, ok := m.Endpoint("get--users--userId-")
	require.True(t, ok)
	assert.Equal(t, "Get a user", ep.Summary)

	_, ok = m.Endpoint("nope")
	assert.False(t, ok)

	c, ok := m.Component("User")
	require.True(t, ok)
	assert.Equal(t, "User", c.Name)

	_, ok = m.Component("get--users")
	assert.False(t, ok)
}

func TestBuild_EmptyAndNil(t *testing.T) {
	m := Build(nil)
	assert.Equal(t, DefaultTitle, m.Title)
	assert.Empty(t, m.Tags)
	assert.Empty(t, m.Components)

	m = Build(parse(t, ""))
	assert.Equal(t, DefaultTitle, m.Title)
	assert.Equal(t, 0, m.EndpointCount())

	var nilModel *Model
	_, ok := nilModel.Endpoint("x")
	assert.False(t, ok)
}

func TestBuild_Swagger2(t *testing.T) {
	m := Build(parse(t, testutil.Swagger2YAML))

	require.Len(t, m.Components, 1)
	assert.Equal(t, "Item", m.Components[0].Name)
	require.Len(t, m.Tags, 1)
	assert.Equal(t, "items", m.Tags[0].Name)
}
