package document

import (
	"time"
)

// Document is a loaded OpenAPI or Swagger document. It is immutable once
// loaded and may be shared between goroutines.
type Document struct {
	// SourcePath is the file path, URL or source name the document came from
	SourcePath string
	// Format is the detected serialization format
	Format SourceFormat
	// SourceSize is the size of the raw input in bytes
	SourceSize int64
	// LoadTime is how long reading and parsing took
	LoadTime time.Duration

	source []byte
	root   *Node
}

// Info holds the fields of the document's info object that the page shows.
// Absent fields are empty strings.
type Info struct {
	Title       string
	Description string
	Version     string
}

// Tag is an entry of the top-level tags list.
type Tag struct {
	Name        string
	Description string
}

// Stats summarises the size of a document.
type Stats struct {
	PathCount      int
	OperationCount int
	SchemaCount    int
}

// Root returns the root value, or nil for an empty document.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Source returns the raw bytes the document was parsed from.
func (d *Document) Source() []byte {
	if d == nil {
		return nil
	}
	return d.source
}

// IsEmpty reports whether there is no document to show: blank input, or a
// root that is null, false, zero or "".
func (d *Document) IsEmpty() bool {
	return !d.Root().Truthy()
}

// SpecVersion returns the "openapi" or "swagger" version string, if any.
func (d *Document) SpecVersion() string {
	root := d.Root()
	if v := root.Get("openapi").StringOr(""); v != "" {
		return v
	}
	return root.Get("swagger").StringOr("")
}

// Info returns the title, description and version of the info object.
func (d *Document) Info() Info {
	info := d.Root().Get("info")
	return Info{
		Title:       info.Get("title").StringOr(""),
		Description: info.Get("description").StringOr(""),
		Version:     info.Get("version").StringOr(""),
	}
}

// Tags returns the top-level tag definitions in source order. Entries
// without a name are skipped.
func (d *Document) Tags() []Tag {
	var tags []Tag
	for _, item := range d.Root().Get("tags").Items() {
		name := item.Get("name").StringOr("")
		if name == "" {
			continue
		}
		tags = append(tags, Tag{Name: name, Description: item.Get("description").StringOr("")})
	}
	return tags
}

// TagDescription returns the description declared for the named tag.
func (d *Document) TagDescription(name string) string {
	for _, t := range d.Tags() {
		if t.Name == name {
			return t.Description
		}
	}
	return ""
}

// PathsNode returns the raw paths object.
func (d *Document) PathsNode() *Node {
	return d.Root().Get("paths")
}

// Paths returns the path items in source order.
func (d *Document) Paths() []PathItem {
	return PathItems(d.PathsNode())
}

// Schemas returns the component schemas in source order. Swagger 2.0
// documents keep their schemas under "definitions", which is used when
// components.schemas is absent.
func (d *Document) Schemas() []Schema {
	schemas := d.Root().Get("components").Get("schemas")
	if !schemas.Truthy() {
		schemas = d.Root().Get("definitions")
	}

	entries := schemas.Entries()
	if len(entries) == 0 {
		return nil
	}
	out := make([]Schema, len(entries))
	for i, e := range entries {
		out[i] = Schema{Name: e.Key, node: e.Value}
	}
	return out
}

// Schema returns the named component schema.
func (d *Document) Schema(name string) (Schema, bool) {
	for _, s := range d.Schemas() {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}

// Stats counts paths, operations and schemas.
func (d *Document) Stats() Stats {
	var s Stats
	for _, item := range d.Paths() {
		s.PathCount++
		s.OperationCount += len(item.Operations())
	}
	s.SchemaCount = len(d.Schemas())
	return s
}
