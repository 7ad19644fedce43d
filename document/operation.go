package document

import (
	"strings"

	"github.com/erraggy/oasdocs/internal/httputil"
)

// DefaultTag is the tag of operations that declare none.
const DefaultTag = "General"

// PathItem is one entry of the paths object.
type PathItem struct {
	Path string
	node *Node
}

// PathItems returns the entries of a paths object in source order.
func PathItems(paths *Node) []PathItem {
	entries := paths.Entries()
	if len(entries) == 0 {
		return nil
	}
	items := make([]PathItem, len(entries))
	for i, e := range entries {
		items[i] = PathItem{Path: e.Key, node: e.Value}
	}
	return items
}

// Node returns the raw path item.
func (p PathItem) Node() *Node { return p.node }

// Operations returns the operations of the path item in source order.
// Keys that are not operation methods ("parameters", "summary", "servers",
// "trace", extensions, ...) are ignored.
func (p PathItem) Operations() []Operation {
	var ops []Operation
	for _, e := range p.node.Entries() {
		if !httputil.IsOperationToken(e.Key) {
			continue
		}
		ops = append(ops, Operation{Path: p.Path, Method: e.Key, node: e.Value})
	}
	return ops
}

// Operation is one method of a path item.
type Operation struct {
	Path   string
	Method string
	node   *Node
}

// Node returns the raw operation object.
func (o Operation) Node() *Node { return o.node }

// Tags returns the operation's tags, or []string{DefaultTag} when the tags
// field is absent, empty or not a list.
func (o Operation) Tags() []string {
	var tags []string
	for _, item := range o.node.Get("tags").Items() {
		if !item.IsScalar() {
			continue
		}
		if item.IsNull() {
			tags = append(tags, "null")
			continue
		}
		tags = append(tags, item.raw.Value)
	}
	if len(tags) == 0 {
		return []string{DefaultTag}
	}
	return tags
}

// Summary returns the summary, falling back to the operationId, then to "".
func (o Operation) Summary() string {
	return o.node.Get("summary").StringOr(o.OperationID())
}

// OperationID returns the operationId, or "".
func (o Operation) OperationID() string {
	return o.node.Get("operationId").StringOr("")
}

// Description returns the description, or "".
func (o Operation) Description() string {
	return o.node.Get("description").StringOr("")
}

// Deprecated reports whether the operation is marked deprecated.
func (o Operation) Deprecated() bool {
	return o.node.Get("deprecated").Truthy()
}

// Parameters returns the operation's own parameters in order. Parameters
// declared on the path item are not included.
func (o Operation) Parameters() []Parameter {
	items := o.node.Get("parameters").Items()
	if len(items) == 0 {
		return nil
	}
	params := make([]Parameter, len(items))
	for i, item := range items {
		params[i] = Parameter{node: item}
	}
	return params
}

// RequestBody returns the request body object, or nil.
func (o Operation) RequestBody() *Node {
	return present(o.node.Get("requestBody"))
}

// Callbacks returns the callbacks object, or nil.
func (o Operation) Callbacks() *Node {
	return present(o.node.Get("callbacks"))
}

// Responses returns the responses in source order.
func (o Operation) Responses() []Response {
	responses := o.node.Get("responses")
	if !responses.Truthy() {
		return nil
	}
	var out []Response
	for _, e := range responses.Entries() {
		out = append(out, Response{
			Code:        e.Key,
			Description: e.Value.Get("description").StringOr(""),
			node:        e.Value,
		})
	}
	return out
}

// Response is one entry of an operation's responses object.
type Response struct {
	// Code is the status code or "default"
	Code string
	// Description is empty when absent
	Description string
	node        *Node
}

// Node returns the raw response object.
func (r Response) Node() *Node { return r.node }

// Parameter is one entry of an operation's parameter list.
type Parameter struct {
	node *Node
}

// Node returns the raw parameter object.
func (p Parameter) Node() *Node { return p.node }

// Name returns the parameter name, or "".
func (p Parameter) Name() string { return p.node.Get("name").StringOr("") }

// In returns the location (path, query, header, cookie, body, formData), or "".
func (p Parameter) In() string { return p.node.Get("in").StringOr("") }

// Required reports whether the parameter is marked required.
func (p Parameter) Required() bool { return p.node.Get("required").Truthy() }

// Description returns the description, or "".
func (p Parameter) Description() string { return p.node.Get("description").StringOr("") }

// Type returns schema.type, falling back to the Swagger 2.0 inline type.
// It is empty when neither is present.
func (p Parameter) Type() string {
	if t := typeText(p.node.Get("schema").Get("type")); t != "" {
		return t
	}
	return typeText(p.node.Get("type"))
}

// typeText renders a type field. OpenAPI 3.1 allows a list of types, which
// is joined with ", ".
func typeText(n *Node) string {
	if n.IsSequence() {
		var parts []string
		for _, item := range n.Items() {
			if s := item.StringOr(""); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return n.StringOr("")
}

func present(n *Node) *Node {
	if !n.Truthy() {
		return nil
	}
	return n
}
