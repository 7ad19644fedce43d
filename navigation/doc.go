// Package navigation derives the navigation model of a documentation page:
// operations grouped by tag, the list of component schemas, and the anchor
// identifiers that link sidebar entries to page sections.
//
// The model is computed once per loaded document with [Build] and is never
// mutated afterwards, so it can be shared by concurrent renders.
//
// # Grouping
//
// [GroupByTag] walks the paths object in source order and, for each path, its
// operation methods in source order. An operation is listed once under every
// tag it declares; operations without tags go to "General". Groups appear in
// the order their tag is first encountered. Nothing is sorted.
//
// # Anchors
//
// An endpoint anchor is the method, a dash, and the path with every character
// outside [A-Za-z0-9] replaced by a dash:
//
//	EndpointAnchor("get", "/users/{userId}") // "get--users--userId-"
//
// A component anchor is the schema name unchanged. The page element holding a
// component section has the id "component-" + name, see [ComponentElementID].
package navigation
