package document

import (
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Node is a read-only view over one value of a parsed document.
//
// All methods are safe to call on a nil *Node, which stands for an absent
// value: lookups on it return nil, and predicates return false. This lets
// callers chain optional lookups without intermediate checks:
//
//	title, ok := doc.Root().Get("info").Get("title").Text()
type Node struct {
	raw *yaml.Node
}

// Entry is one key/value pair of a mapping node, in source order.
type Entry struct {
	Key   string
	Value *Node
}

// wrap returns the Node for raw, skipping document wrappers and resolving aliases.
func wrap(raw *yaml.Node) *Node {
	for raw != nil {
		switch raw.Kind {
		case yaml.DocumentNode:
			if len(raw.Content) == 0 {
				return nil
			}
			raw = raw.Content[0]
		case yaml.AliasNode:
			raw = raw.Alias
		default:
			return &Node{raw: raw}
		}
	}
	return nil
}

// NewNode wraps a yaml.Node. Document and alias nodes are resolved to the
// value they stand for. It returns nil for a nil or empty document.
func NewNode(raw *yaml.Node) *Node {
	return wrap(raw)
}

// Raw returns the underlying yaml.Node, or nil for an absent value.
func (n *Node) Raw() *yaml.Node {
	if n == nil {
		return nil
	}
	return n.raw
}

// IsMapping reports whether the node is a mapping (object).
func (n *Node) IsMapping() bool {
	return n != nil && n.raw.Kind == yaml.MappingNode
}

// IsSequence reports whether the node is a sequence (array).
func (n *Node) IsSequence() bool {
	return n != nil && n.raw.Kind == yaml.SequenceNode
}

// IsScalar reports whether the node is a scalar, including null.
func (n *Node) IsScalar() bool {
	return n != nil && n.raw.Kind == yaml.ScalarNode
}

// IsNull reports whether the value is absent or an explicit null.
func (n *Node) IsNull() bool {
	return n == nil || (n.raw.Kind == yaml.ScalarNode && n.raw.ShortTag() == "!!null")
}

// Line returns the 1-based source line of the node, or 0 when unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.raw.Line
}

// Len returns the number of entries of a mapping or items of a sequence.
func (n *Node) Len() int {
	switch {
	case n.IsMapping():
		return len(n.Entries())
	case n.IsSequence():
		return len(n.raw.Content)
	default:
		return 0
	}
}

// Get returns the value stored under key, or nil when the node is not a
// mapping or has no such key. When a key is repeated the last value wins.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	for _, e := range n.Entries() {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Entries returns the key/value pairs of a mapping in source order.
//
// A repeated key keeps the position of its first occurrence and the value
// of its last. YAML merge keys ("<<") are expanded in place; explicit keys
// take precedence over merged ones. Keys that are not scalars are skipped.
func (n *Node) Entries() []Entry {
	if !n.IsMapping() {
		return nil
	}
	content := n.raw.Content
	out := make([]Entry, 0, len(content)/2)
	pos := make(map[string]int, len(content)/2)
	put := func(key string, value *Node, override bool) {
		if i, ok := pos[key]; ok {
			if override {
				out[i].Value = value
			}
			return
		}
		pos[key] = len(out)
		out = append(out, Entry{Key: key, Value: value})
	}

	for i := 0; i+1 < len(content); i += 2 {
		k, v := content[i], content[i+1]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if k.ShortTag() == "!!merge" {
			for _, src := range mergeSources(v) {
				for _, e := range src.Entries() {
					put(e.Key, e.Value, false)
				}
			}
			continue
		}
		put(k.Value, wrap(v), true)
	}
	return out
}

func mergeSources(v *yaml.Node) []*Node {
	src := wrap(v)
	switch {
	case src.IsMapping():
		return []*Node{src}
	case src.IsSequence():
		var out []*Node
		for _, item := range src.Items() {
			if item.IsMapping() {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

// Keys returns the keys of a mapping in source order.
func (n *Node) Keys() []string {
	entries := n.Entries()
	if entries == nil {
		return nil
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Items returns the elements of a sequence in order.
func (n *Node) Items() []*Node {
	if !n.IsSequence() {
		return nil
	}
	items := make([]*Node, 0, len(n.raw.Content))
	for _, c := range n.raw.Content {
		if item := wrap(c); item != nil {
			items = append(items, item)
		}
	}
	return items
}

// Text returns the literal text of a non-null scalar.
func (n *Node) Text() (string, bool) {
	if !n.IsScalar() || n.IsNull() {
		return "", false
	}
	return n.raw.Value, true
}

// Bool returns the value of a boolean scalar.
func (n *Node) Bool() (bool, bool) {
	if !n.IsScalar() || n.raw.ShortTag() != "!!bool" {
		return false, false
	}
	return strings.EqualFold(n.raw.Value, "true"), true
}

// Truthy reports whether the value counts as present: a non-empty string, a
// true boolean, a non-zero number, or any mapping or sequence. Absent values,
// null, false, zero and "" are not truthy.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.raw.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return true
	case yaml.ScalarNode:
	default:
		return false
	}

	switch n.raw.ShortTag() {
	case "!!null":
		return false
	case "!!bool":
		b, _ := n.Bool()
		return b
	case "!!int", "!!float":
		f, ok := n.Float()
		if !ok {
			return n.raw.Value != ""
		}
		return f != 0 && !math.IsNaN(f)
	default:
		return n.raw.Value != ""
	}
}

// StringOr returns the scalar text when the node is truthy, otherwise fallback.
func (n *Node) StringOr(fallback string) string {
	if !n.IsScalar() || !n.Truthy() {
		return fallback
	}
	return n.raw.Value
}

// Float returns the numeric value of an int or float scalar.
func (n *Node) Float() (float64, bool) {
	if !n.IsScalar() {
		return 0, false
	}
	switch n.raw.ShortTag() {
	case "!!int":
		if i, err := strconv.ParseInt(n.raw.Value, 0, 64); err == nil {
			return float64(i), true
		}
		return parseFloat(n.raw.Value)
	case "!!float":
		return parseFloat(n.raw.Value)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, "+")) {
	case ".inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Contains reports whether a sequence holds a scalar whose text equals s.
func (n *Node) Contains(s string) bool {
	for _, item := range n.Items() {
		if text, ok := item.Text(); ok && text == s {
			return true
		}
	}
	return false
}
