package selection

import (
	"math/rand/v2"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScroller struct {
	ids      map[string]bool
	scrolled []string
}

func (f *fakeScroller) ScrollIntoView(id string) bool {
	if !f.ids[id] {
		return false
	}
	f.scrolled = append(f.scrolled, id)
	return true
}

func TestController_InitialStateFromQuery(t *testing.T) {
	r := NewMemoryRouter(url.Values{"component": {"User"}, "endpoint": {"get--users"}})
	c := NewController(r)

	assert.Equal(t, Endpoint("get--users"), c.State())
	assert.Equal(t, "?endpoint=get--users", r.String())
	assert.Empty(t, c.Pending(), "mounting does not scroll")
}

func TestController_SelectEndpoint(t *testing.T) {
	r := NewMemoryRouter(url.Values{"component": {"User"}, "tab": {"2"}})
	var navigated []string
	c := NewController(r, WithNavigate(func(anchor string) {
		navigated = append(navigated, anchor)
	}))

	s := c.SelectEndpoint("get--users--userId-")

	assert.Equal(t, Endpoint("get--users--userId-"), s)
	assert.Equal(t, url.Values{"endpoint": {"get--users--userId-"}, "tab": {"2"}}, r.Query())
	assert.Equal(t, []string{"get--users--userId-"}, navigated)
	assert.Empty(t, c.Pending())
}

func TestController_SelectComponentDefersScroll(t *testing.T) {
	r := NewMemoryRouter(url.Values{"endpoint": {"get--users"}})
	c := NewController(r)

	c.SelectComponent("User")

	assert.Equal(t, url.Values{"component": {"User"}}, r.Query())
	assert.Equal(t, "component-User", c.Pending())

	page := &fakeScroller{ids: map[string]bool{"component-User": true}}
	assert.True(t, c.Commit(page))
	assert.Equal(t, []string{"component-User"}, page.scrolled)

	assert.False(t, c.Commit(page), "a scroll runs once")
	assert.Len(t, page.scrolled, 1)
}

func TestController_MissingScrollTarget(t *testing.T) {
	c := NewController(NewMemoryRouter(nil))

	c.SelectComponent("Ghost")
	assert.False(t, c.Commit(&fakeScroller{}))
	assert.Equal(t, Component("Ghost"), c.State(), "state updates without a target")
	assert.Empty(t, c.Pending())
}

func TestController_NewerSelectionReplacesPendingScroll(t *testing.T) {
	c := NewController(NewMemoryRouter(nil))

	c.SelectComponent("User")
	c.SelectEndpoint("get--users")

	assert.Empty(t, c.Pending())
	assert.False(t, c.Commit(&fakeScroller{ids: map[string]bool{"component-User": true}}))
}

func TestController_Clear(t *testing.T) {
	r := NewMemoryRouter(url.Values{"component": {"User"}, "keep": {"1"}})
	c := NewController(r)

	assert.Equal(t, State{}, c.Clear())
	assert.Equal(t, url.Values{"keep": {"1"}}, r.Query())
}

func TestController_MutualExclusion(t *testing.T) {
	r := NewMemoryRouter(nil)
	c := NewController(r)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		switch rng.IntN(3) {
		case 0:
			c.SelectEndpoint("get--users")
		case 1:
			c.SelectComponent("User")
		default:
			c.Clear()
		}
		q := r.Query()
		assert.False(t, q.Has("endpoint") && q.Has("component"), "query %v", q)
		assert.Equal(t, c.State(), FromQuery(q))
	}
}

func TestController_ConcurrentUse(t *testing.T) {
	r := NewMemoryRouter(nil)
	var c *Controller
	c = NewController(r, WithNavigate(func(string) { _ = c.State() }))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if i%2 == 0 {
					c.SelectEndpoint("get--users")
				} else {
					c.SelectComponent("User")
				}
				c.Commit(&fakeScroller{})
			}
		}()
	}
	wg.Wait()

	q := r.Query()
	require.False(t, q.Has("endpoint") && q.Has("component"))
	assert.Equal(t, c.State(), FromQuery(q))
}
