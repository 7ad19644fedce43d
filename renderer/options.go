package renderer

import (
	"net/url"
	"strings"

	"github.com/erraggy/oasdocs/oaserrors"
)

// Option configures a render.
type Option func(*renderConfig) error

type renderConfig struct {
	expanded   bool
	standalone bool
	classNames ClassNames
	query      url.Values
	basePath   string
}

func applyOptions(opts ...Option) (*renderConfig, error) {
	cfg := &renderConfig{
		expanded:   true,
		standalone: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithExpanded selects the expanded layout (sidebar next to the content) or
// the compact one (content only, smaller type).
// Default: true
func WithExpanded(expanded bool) Option {
	return func(cfg *renderConfig) error {
		cfg.expanded = expanded
		return nil
	}
}

// WithStandalone wraps the page in a complete HTML document with its own
// stylesheet. Without it only the page's root element is written, for
// embedding in another page.
// Default: true
func WithStandalone(standalone bool) Option {
	return func(cfg *renderConfig) error {
		cfg.standalone = standalone
		return nil
	}
}

// WithClassNames appends custom classes to the parts of the page.
func WithClassNames(cn ClassNames) Option {
	return func(cfg *renderConfig) error {
		cfg.classNames = cn
		return nil
	}
}

// WithQuery sets the query string of the page being rendered. Sidebar links
// keep its unrelated parameters.
func WithQuery(q url.Values) Option {
	return func(cfg *renderConfig) error {
		cfg.query = q
		return nil
	}
}

// WithBasePath sets the URL path sidebar links point at, e.g. "/docs/".
// Default: "" (links are relative to the current page)
func WithBasePath(path string) Option {
	return func(cfg *renderConfig) error {
		if strings.ContainsAny(path, "?#") {
			return &oaserrors.ConfigError{Option: "WithBasePath", Value: path, Message: "must not contain a query or fragment"}
		}
		cfg.basePath = path
		return nil
	}
}
