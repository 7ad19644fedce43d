package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/oasdocs/oaserrors"
	"go.yaml.in/yaml/v4"
)

// decodeJSONNode builds a yaml.Node tree from JSON text, keeping object key
// order. The resulting tree is indistinguishable from one produced for the
// equivalent YAML document, so every accessor works the same on both.
func decodeJSONNode(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := readJSONValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

func readJSONValue(dec *json.Decoder, depth int) (*yaml.Node, error) {
	if depth > MaxNestingDepth {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "depth",
			Limit:        MaxNestingDepth,
			Actual:       int64(depth),
			Message:      fmt.Sprintf("structure too deeply nested at offset %d", dec.InputOffset()),
		}
	}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				value, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, scalar("!!str", key), value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				item, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		default:
			return nil, fmt.Errorf("unexpected %q", rune(t))
		}
	case string:
		n := scalar("!!str", t)
		n.Style = yaml.DoubleQuotedStyle
		return n, nil
	case json.Number:
		if strings.ContainsAny(string(t), ".eE") {
			return scalar("!!float", string(t)), nil
		}
		return scalar("!!int", string(t)), nil
	case bool:
		if t {
			return scalar("!!bool", "true"), nil
		}
		return scalar("!!bool", "false"), nil
	case nil:
		return scalar("!!null", "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
