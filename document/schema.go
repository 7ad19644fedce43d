package document

// Schema is one named component schema.
type Schema struct {
	Name string
	node *Node
}

// Property is one entry of a schema's properties.
type Property struct {
	Name string
	// Type is empty when the property has no type (for example a $ref)
	Type        string
	Description string
	Required    bool
}

// Node returns the raw schema object.
func (s Schema) Node() *Node { return s.node }

// Description returns the schema description, or "".
func (s Schema) Description() string { return s.node.Get("description").StringOr("") }

// HasProperties reports whether the schema has a properties field. Schemas
// without one (compositions, enums, arrays) are shown as a verbatim dump.
func (s Schema) HasProperties() bool {
	return s.node.Get("properties").Truthy()
}

// Required returns the names listed in the schema's required field.
func (s Schema) Required() []string {
	var names []string
	for _, item := range s.node.Get("required").Items() {
		if name, ok := item.Text(); ok {
			names = append(names, name)
		}
	}
	return names
}

// Properties returns the schema's properties in source order.
func (s Schema) Properties() []Property {
	required := s.node.Get("required")
	entries := s.node.Get("properties").Entries()
	if len(entries) == 0 {
		return nil
	}
	props := make([]Property, len(entries))
	for i, e := range entries {
		props[i] = Property{
			Name:        e.Key,
			Type:        typeText(e.Value.Get("type")),
			Description: e.Value.Get("description").StringOr(""),
			Required:    required.Contains(e.Key),
		}
	}
	return props
}
