package navigation

import (
	"strings"
	"unicode/utf16"
)

// componentElementPrefix prefixes the element id of a component section.
const componentElementPrefix = "component-"

// EndpointAnchor returns the anchor of the operation method on path.
// Characters outside the basic Latin alphabet produce one dash per UTF-16
// code unit, so the result is identical to anchors generated in a browser.
func EndpointAnchor(method, path string) string {
	var b strings.Builder
	b.Grow(len(method) + 1 + len(path))
	b.WriteString(method)
	b.WriteByte('-')
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			n := utf16.RuneLen(r)
			if n < 1 {
				n = 1
			}
			b.WriteString(strings.Repeat("-", n))
		}
	}
	return b.String()
}

// ComponentAnchor returns the anchor of a component schema: its name, verbatim.
func ComponentAnchor(name string) string {
	return name
}

// ComponentElementID returns the id of the page element holding the
// component section for name.
func ComponentElementID(name string) string {
	return componentElementPrefix + name
}

// ComponentFromElementID reverses ComponentElementID.
func ComponentFromElementID(id string) (string, bool) {
	return strings.CutPrefix(id, componentElementPrefix)
}
