// Package selection tracks which sidebar entry is active on a documentation page.
//
// At most one entry is active: an endpoint, a component, or nothing. The
// selection lives in the page URL as either ?endpoint=<anchor> or
// ?component=<anchor>, never both.
//
// The package is split in three layers:
//
//   - [Reduce] is a pure transition function over immutable [State] values.
//   - [FromQuery], [ApplyQuery] and [Href] translate between a State and the
//     URL query string, preserving unrelated parameters.
//   - [Controller] applies transitions to a [Router], calls the navigate
//     callback for endpoint selections and queues the scroll of component
//     selections until the next render is committed (see [Controller.Commit]).
package selection
