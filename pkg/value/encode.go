package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotEncodable is returned when a value has no JSON form (NaN, invalid).
var ErrNotEncodable = errors.New("value is not JSON-encodable")

// Encode writes v as JSON. An empty indent produces compact output; otherwise
// each nesting level is indented by indent. Object keys keep their order.
func Encode(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value, indent string, level int) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !IsNumberLiteral(v.s) {
			return fmt.Errorf("%w: number %q", ErrNotEncodable, v.s)
		}
		buf.WriteString(v.s)
	case KindString:
		writeString(buf, v.s)
	case KindArray:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			if err := encodeValue(buf, item, indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte(']')
	case KindObject:
		if v.obj.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			writeString(buf, k)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encodeValue(buf, v.obj.vals[k], indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", ErrNotEncodable, v.raw)
	}
	return nil
}

// IsNumberLiteral reports whether s is a valid JSON number.
func IsNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

func newline(buf *bytes.Buffer, indent string, level int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < level; i++ {
		buf.WriteString(indent)
	}
}

// writeString quotes s without HTML escaping so exported text stays readable.
func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}

// ToYAMLNode converts v into a yaml.v3 node tree that keeps key order.
func ToYAMLNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool:
		lit := "false"
		if v.b {
			lit = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: lit}, nil
	case KindNumber:
		tag := "!!float"
		if !strings.ContainsAny(v.s, ".eE") {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}, nil
	case KindString:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
		if strings.Contains(v.s, "\n") {
			n.Style = yaml.LiteralStyle
		}
		return n, nil
	case KindArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			child, err := ToYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case KindObject:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.obj.Entries() {
			child, err := ToYAMLNode(e.Value)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotEncodable, v.raw)
	}
}
