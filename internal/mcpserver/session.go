package mcpserver

import (
	"sync"

	"github.com/erraggy/oasdocs/selection"
)

// session holds the selection of the one client connected over stdio. The
// router stands in for the page URL: its query is what a browser would show.
type session struct {
	router *selection.MemoryRouter
	ctrl   *selection.Controller

	mu        sync.Mutex
	navigated string
}

func newSession() *session {
	s := &session{router: selection.NewMemoryRouter(nil)}
	s.ctrl = selection.NewController(s.router, selection.WithNavigate(func(anchor string) {
		s.mu.Lock()
		s.navigated = anchor
		s.mu.Unlock()
	}))
	return s
}

// takeNavigated returns and forgets the endpoint anchor last navigated to.
func (s *session) takeNavigated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	anchor := s.navigated
	s.navigated = ""
	return anchor
}

type selectionOutput struct {
	Kind      string `json:"kind"`
	Anchor    string `json:"anchor,omitempty"`
	Query     string `json:"query"`
	ElementID string `json:"element_id,omitempty"`
}

func (s *session) snapshot() selectionOutput {
	state := s.ctrl.State()
	return selectionOutput{
		Kind:      state.Kind.String(),
		Anchor:    state.Anchor,
		Query:     s.router.String(),
		ElementID: state.ElementID(),
	}
}
