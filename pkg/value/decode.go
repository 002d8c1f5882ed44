package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// maxNesting bounds decoder recursion on hostile input.
const maxNesting = 10000

// ErrTooDeep is returned when a document nests deeper than the decoder allows.
var ErrTooDeep = errors.New("document nesting exceeds limit")

// DecodeJSON parses exactly one JSON document, keeping object key order and
// number literals.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeNext(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

// DecodeJSONStream reads consecutive JSON documents from r until EOF.
func DecodeJSONStream(r io.Reader) ([]Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out []Value
	for {
		v, err := decodeNext(dec, 0)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

func decodeNext(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok, depth)
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	if depth > maxNesting {
		return Value{}, ErrTooDeep
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeArray(dec, depth)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object keys must be strings, got %T", keyTok)
		}
		v, err := decodeNext(dec, depth+1)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // '}'
		return Value{}, err
	}
	return FromObject(obj), nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	items := []Value{}
	for dec.More() {
		v, err := decodeNext(dec, depth+1)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // ']'
		return Value{}, err
	}
	return Value{kind: KindArray, items: items}, nil
}

// FromYAML converts a yaml.v3 node tree, keeping mapping order. Document
// nodes are unwrapped; aliases resolve to their anchors.
func FromYAML(n *yaml.Node) (Value, error) {
	return fromYAML(n, 0)
}

func fromYAML(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	if depth > maxNesting {
		return Value{}, ErrTooDeep
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(n.Content[0], depth)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			child, err := fromYAML(v, depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k.Value, err)
			}
			obj.Set(k.Value, child)
		}
		return FromObject(obj), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for i, c := range n.Content {
			child, err := fromYAML(c, depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, child)
		}
		return Value{kind: KindArray, items: items}, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// integers wider than int64 keep their literal
			return Number(n.Value), nil
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		if IsNumberLiteral(n.Value) {
			return Number(n.Value), nil
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}
