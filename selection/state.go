package selection

import (
	"net/url"

	"github.com/erraggy/oasdocs/navigation"
)

// Query parameter names.
const (
	QueryEndpoint  = "endpoint"
	QueryComponent = "component"
)

// Kind is the kind of the active entry.
type Kind int

const (
	// KindNone means nothing is selected.
	KindNone Kind = iota
	// KindEndpoint means an endpoint is selected.
	KindEndpoint
	// KindComponent means a component is selected.
	KindComponent
)

// String returns the query parameter name of the kind, or "none".
func (k Kind) String() string {
	switch k {
	case KindEndpoint:
		return QueryEndpoint
	case KindComponent:
		return QueryComponent
	default:
		return "none"
	}
}

// State is the current selection. The zero value selects nothing.
type State struct {
	Kind   Kind
	Anchor string
}

// Endpoint returns the state selecting the endpoint anchor.
func Endpoint(anchor string) State {
	if anchor == "" {
		return State{}
	}
	return State{Kind: KindEndpoint, Anchor: anchor}
}

// Component returns the state selecting the component anchor.
func Component(anchor string) State {
	if anchor == "" {
		return State{}
	}
	return State{Kind: KindComponent, Anchor: anchor}
}

// IsNone reports whether nothing is selected.
func (s State) IsNone() bool { return s.Kind == KindNone }

// IsEndpoint reports whether the endpoint anchor is the active entry.
func (s State) IsEndpoint(anchor string) bool {
	return s.Kind == KindEndpoint && s.Anchor == anchor
}

// IsComponent reports whether the component anchor is the active entry.
func (s State) IsComponent(anchor string) bool {
	return s.Kind == KindComponent && s.Anchor == anchor
}

// String formats the state as "kind" or "kind:anchor".
func (s State) String() string {
	if s.IsNone() {
		return s.Kind.String()
	}
	return s.Kind.String() + ":" + s.Anchor
}

// ElementID returns the id of the page element the state points at, or ""
// when nothing is selected.
func (s State) ElementID() string {
	switch s.Kind {
	case KindEndpoint:
		return s.Anchor
	case KindComponent:
		return navigation.ComponentElementID(s.Anchor)
	default:
		return ""
	}
}

// Event is a selection transition.
type Event struct {
	kind   Kind
	anchor string
}

// SelectEndpoint makes the endpoint anchor the active entry.
func SelectEndpoint(anchor string) Event { return Event{kind: KindEndpoint, anchor: anchor} }

// SelectComponent makes the component anchor the active entry.
func SelectComponent(anchor string) Event { return Event{kind: KindComponent, anchor: anchor} }

// Clear deselects everything.
func Clear() Event { return Event{} }

// Reduce returns the state after e. Every event fully determines the result,
// so the previous state never leaks into the next one: selecting a component
// drops any endpoint selection and the other way around. Selecting an empty
// anchor is the same as Clear.
func Reduce(_ State, e Event) State {
	switch e.kind {
	case KindEndpoint:
		return Endpoint(e.anchor)
	case KindComponent:
		return Component(e.anchor)
	default:
		return State{}
	}
}

// FromQuery reads the state from a query string. The endpoint parameter wins
// over the component parameter; empty values count as absent. Values are not
// checked against any model: an unknown anchor simply matches no entry.
func FromQuery(q url.Values) State {
	if a := q.Get(QueryEndpoint); a != "" {
		return Endpoint(a)
	}
	if a := q.Get(QueryComponent); a != "" {
		return Component(a)
	}
	return State{}
}

// ApplyQuery returns a copy of q that encodes s: both selection parameters
// are removed and the one for s, if any, is set. Other parameters are kept.
func ApplyQuery(q url.Values, s State) url.Values {
	out := make(url.Values, len(q)+1)
	for k, v := range q {
		if k == QueryEndpoint || k == QueryComponent {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	switch s.Kind {
	case KindEndpoint:
		out.Set(QueryEndpoint, s.Anchor)
	case KindComponent:
		out.Set(QueryComponent, s.Anchor)
	}
	return out
}

// Href returns the link target of a sidebar entry on a page whose current
// query is current: the query after applying e, and the fragment of the
// element the new state points at.
func Href(current url.Values, e Event) string {
	next := Reduce(FromQuery(current), e)
	href := "?" + ApplyQuery(current, next).Encode()
	if id := next.ElementID(); id != "" {
		href += "#" + url.PathEscape(id)
	}
	return href
}
