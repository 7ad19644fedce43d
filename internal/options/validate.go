// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/oasdocs/oaserrors"
)

// Source is one way a caller can supply input, and whether it was set.
type Source struct {
	Name string
	Set  bool
}

// SingleInputSource ensures exactly one input source is specified and returns
// its name. The error is an *oaserrors.ConfigError naming the candidates when
// none is set, or the conflicting ones when several are.
func SingleInputSource(sources ...Source) (string, error) {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return set[0], nil
	case 0:
		return "", &oaserrors.ConfigError{
			Option:  "input source",
			Message: "must specify one of: " + strings.Join(names, ", "),
		}
	default:
		return "", &oaserrors.ConfigError{
			Option:  "input source",
			Value:   strings.Join(set, ", "),
			Message: "only one input source is allowed",
		}
	}
}
