// Package renderer renders the documentation page of an OpenAPI or Swagger
// document as HTML, and converts rendered pages to Markdown.
//
// A page has a header with the document title (falling back to "API
// Documentation") and description, then one section per path in source
// order. Each section holds one block per operation with its method badge,
// summary, description, parameters table, request body, responses table and
// callbacks. A components section lists every schema with a property table,
// or with a JSON dump when the schema has no properties. In the expanded
// layout a sidebar lists the tag groups and the components, and marks the
// entry of the current selection.
//
// [Render] returns a committed [Page]. Besides writing itself, a Page can
// find elements by id, which makes it the scroll target of a
// selection.Controller, and can export itself or one section as Markdown.
//
// Documents that fail to load are shown with [RenderError]; empty documents
// render the "No API spec loaded." message.
package renderer
