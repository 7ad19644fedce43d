package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON encodes the node as compact JSON with mapping keys in source order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent encodes the node as JSON indented by two spaces, with
// mapping keys in source order. This is the form used for verbatim dumps of
// request bodies, callbacks and schemas without properties.
func (n *Node) MarshalJSONIndent() ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML lets a Node embedded in a larger value keep its source layout
// when that value is written as YAML.
func (n *Node) MarshalYAML() (any, error) {
	if n == nil {
		return nil, nil
	}
	return n.raw, nil
}

func writeNodeJSON(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.raw.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, e := range n.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		return writeScalarJSON(buf, n)
	}
}

func writeScalarJSON(buf *bytes.Buffer, n *Node) error {
	switch n.raw.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		b, _ := n.Bool()
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int":
		if i, err := strconv.ParseInt(n.raw.Value, 0, 64); err == nil {
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
		return writeFloatJSON(buf, n)
	case "!!float":
		return writeFloatJSON(buf, n)
	default:
		return writeJSONString(buf, n.raw.Value)
	}
}

// writeFloatJSON writes a number. Infinities and NaN have no JSON form and
// are written as null.
func writeFloatJSON(buf *bytes.Buffer, n *Node) error {
	f, ok := n.Float()
	if !ok {
		return writeJSONString(buf, n.raw.Value)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// writeJSONString writes s as a JSON string without escaping HTML characters.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
