package selection

import (
	"net/url"
	"sync"
)

// Router gives the controller access to the page URL's query string.
type Router interface {
	// Query returns the current query parameters.
	Query() url.Values
	// ReplaceQuery replaces the query parameters without adding a history entry.
	ReplaceQuery(q url.Values)
}

// Scroller brings a page element into view. It reports false when no element
// has the id, in which case nothing happens.
type Scroller interface {
	ScrollIntoView(elementID string) bool
}

// Controller applies selection transitions to a Router.
//
// Endpoint selections call the navigate callback right away. Component
// selections queue a scroll that runs on the next Commit, once the page that
// contains the component section has been rendered. A newer selection
// replaces a queued scroll that has not run yet.
//
// A Controller is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	router   Router
	state    State
	pending  string
	navigate func(anchor string)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNavigate sets the callback run after an endpoint is selected. The
// callback receives the endpoint anchor and runs without the controller's
// lock held, so it may call back into the controller.
func WithNavigate(fn func(anchor string)) ControllerOption {
	return func(c *Controller) {
		c.navigate = fn
	}
}

// NewController mounts a controller on router. The initial state is read
// from the router's current query.
func NewController(router Router, opts ...ControllerOption) *Controller {
	c := &Controller{
		router: router,
		state:  FromQuery(router.Query()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current selection.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the element id of the queued scroll, or "".
func (c *Controller) Pending() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// SelectEndpoint makes the endpoint anchor active, rewrites the query and
// calls the navigate callback.
func (c *Controller) SelectEndpoint(anchor string) State {
	s := c.dispatch(SelectEndpoint(anchor))
	if c.navigate != nil && !s.IsNone() {
		c.navigate(s.Anchor)
	}
	return s
}

// SelectComponent makes the component anchor active, rewrites the query and
// queues a scroll to the component section for the next Commit.
func (c *Controller) SelectComponent(anchor string) State {
	return c.dispatch(SelectComponent(anchor))
}

// Clear deselects everything and drops any queued scroll.
func (c *Controller) Clear() State {
	return c.dispatch(Clear())
}

func (c *Controller) dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Reduce(c.state, e)
	c.router.ReplaceQuery(ApplyQuery(c.router.Query(), c.state))

	c.pending = ""
	if c.state.Kind == KindComponent {
		c.pending = c.state.ElementID()
	}
	return c.state
}

// Commit runs the queued scroll, if any, against a freshly rendered page and
// reports whether an element was scrolled into view. The queue is emptied
// even when the element does not exist.
func (c *Controller) Commit(s Scroller) bool {
	c.mu.Lock()
	id := c.pending
	c.pending = ""
	c.mu.Unlock()

	if id == "" || s == nil {
		return false
	}
	return s.ScrollIntoView(id)
}

// MemoryRouter is a Router that keeps the query in memory. It backs
// sessions that have no browser URL, such as MCP clients.
type MemoryRouter struct {
	mu    sync.Mutex
	query url.Values
}

// NewMemoryRouter returns a router starting at query q.
func NewMemoryRouter(q url.Values) *MemoryRouter {
	return &MemoryRouter{query: ApplyQuery(q, FromQuery(q))}
}

// Query implements Router. The result is a copy.
func (r *MemoryRouter) Query() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneValues(r.query)
}

// ReplaceQuery implements Router.
func (r *MemoryRouter) ReplaceQuery(q url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = cloneValues(q)
}

// String returns the query in URL form, starting with '?' unless empty.
func (r *MemoryRouter) String() string {
	encoded := r.Query().Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
