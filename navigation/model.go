package navigation

import (
	"github.com/erraggy/oasdocs/document"
)

// Endpoint is one sidebar entry for an operation.
type Endpoint struct {
	Path        string `json:"path" yaml:"path"`
	Method      string `json:"method" yaml:"method"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Anchor      string `json:"anchor" yaml:"anchor"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// TagGroup is the ordered list of endpoints sharing a tag.
type TagGroup struct {
	Name string `json:"name" yaml:"name"`
	// Description comes from the document's top-level tags list, if declared
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoints   []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Component is one sidebar entry for a component schema.
type Component struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Anchor      string `json:"anchor" yaml:"anchor"`
}

// Model is the navigation model shared by the sidebar and the page body.
type Model struct {
	Title      string      `json:"title" yaml:"title"`
	Tags       []TagGroup  `json:"tags" yaml:"tags"`
	Components []Component `json:"components" yaml:"components"`

	endpoints  map[string]Endpoint
	components map[string]Component
}

// DefaultTitle is the page title used when the document has none.
const DefaultTitle = "API Documentation"

// GroupByTag groups the operations of a paths object by tag. See the package
// documentation for the ordering rules. It is pure: the same input always
// yields an equal result.
func GroupByTag(paths *document.Node) []TagGroup {
	var groups []TagGroup
	index := make(map[string]int)

	for _, item := range document.PathItems(paths) {
		for _, op := range item.Operations() {
			ep := Endpoint{
				Path:        op.Path,
				Method:      op.Method,
				Summary:     op.Summary(),
				Anchor:      EndpointAnchor(op.Method, op.Path),
				OperationID: op.OperationID(),
				Deprecated:  op.Deprecated(),
			}
			for _, tag := range op.Tags() {
				i, ok := index[tag]
				if !ok {
					i = len(groups)
					index[tag] = i
					groups = append(groups, TagGroup{Name: tag})
				}
				groups[i].Endpoints = append(groups[i].Endpoints, ep)
			}
		}
	}
	return groups
}

// Build derives the navigation model of doc. A nil or empty document yields
// an empty model.
func Build(doc *document.Document) *Model {
	m := &Model{
		Title:      DefaultTitle,
		endpoints:  make(map[string]Endpoint),
		components: make(map[string]Component),
	}
	if doc == nil {
		return m
	}
	if title := doc.Info().Title; title != "" {
		m.Title = title
	}

	m.Tags = GroupByTag(doc.PathsNode())
	for i := range m.Tags {
		m.Tags[i].Description = doc.TagDescription(m.Tags[i].Name)
		for _, ep := range m.Tags[i].Endpoints {
			m.endpoints[ep.Anchor] = ep
		}
	}

	for _, s := range doc.Schemas() {
		c := Component{
			Name:        s.Name,
			Description: s.Description(),
			Anchor:      ComponentAnchor(s.Name),
		}
		m.Components = append(m.Components, c)
		m.components[c.Anchor] = c
	}
	return m
}

// Endpoint looks up an endpoint by anchor.
func (m *Model) Endpoint(anchor string) (Endpoint, bool) {
	if m == nil {
		return Endpoint{}, false
	}
	ep, ok := m.endpoints[anchor]
	return ep, ok
}

// Component looks up a component by anchor.
func (m *Model) Component(anchor string) (Component, bool) {
	if m == nil {
		return Component{}, false
	}
	c, ok := m.components[anchor]
	return c, ok
}

// EndpointCount returns the number of distinct endpoints. An endpoint listed
// under several tags counts once.
func (m *Model) EndpointCount() int {
	if m == nil {
		return 0
	}
	return len(m.endpoints)
}

// Anchors returns every endpoint anchor in sidebar order, without repeats.
func (m *Model) Anchors() []string {
	if m == nil {
		return nil
	}
	var anchors []string
	seen := make(map[string]bool)
	for _, g := range m.Tags {
		for _, ep := range g.Endpoints {
			if !seen[ep.Anchor] {
				seen[ep.Anchor] = true
				anchors = append(anchors, ep.Anchor)
			}
		}
	}
	return anchors
}
