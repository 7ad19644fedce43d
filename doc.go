// Package oasdocs renders human-readable documentation pages from OpenAPI Specification (OAS)
// and Swagger documents.
//
// A document is loaded once, turned into a navigation model (operations grouped by tag,
// plus the list of component schemas) and rendered as a single page with a sidebar,
// one section per endpoint and one section per component schema.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - document: Load YAML or JSON documents into an ordered node tree with typed accessors
//   - navigation: Group operations by tag and derive stable anchor identifiers
//   - selection: Track the active endpoint or component and mirror it to the URL query
//   - renderer: Render the page (HTML or Markdown) from a document and its navigation model
//
// The server package serves the rendered page over HTTP, and the oasdocs command
// exposes rendering, navigation listing, serving and an MCP server from the command line.
//
// # Quick Start
//
// Load a document and render it:
//
//	import (
//		"github.com/erraggy/oasdocs/document"
//		"github.com/erraggy/oasdocs/navigation"
//		"github.com/erraggy/oasdocs/renderer"
//		"github.com/erraggy/oasdocs/selection"
//	)
//
//	doc, err := document.LoadWithOptions(document.WithFilePath("openapi.yaml"))
//	if err != nil {
//		// err matches oaserrors.ErrParse for malformed input
//		_ = renderer.RenderError(os.Stdout, err)
//		return
//	}
//	model := navigation.Build(doc)
//	page, err := renderer.Render(doc, model, selection.State{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, _ = page.WriteTo(os.Stdout)
//
// # Anchors
//
// Every endpoint section is addressable by an anchor of the form
// "{method}-{path}" where every character of the path outside [A-Za-z0-9] is replaced
// by '-'. Component sections use the schema name as their anchor and
// "component-{name}" as their element id.
//
// # Selection
//
// The active selection is mirrored to the page URL as either ?endpoint=<anchor> or
// ?component=<name>, never both. See the selection package for the reducer, the
// query-string adapter and the side-effecting controller.
package oasdocs
