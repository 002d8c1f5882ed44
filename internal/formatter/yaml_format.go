package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent int
	// ExpandEscapedNewlines turns literal "\n" sequences inside strings into
	// line breaks, which then print as literal blocks.
	ExpandEscapedNewlines bool
}

// FormatYAML renders v as YAML with keys in their original order. Multi-line
// strings are written as literal blocks.
func FormatYAML(v value.Value, opts YAMLFormatOptions) (string, error) {
	node, err := value.ToYAMLNode(v)
	if err != nil {
		return "", err
	}
	if opts.ExpandEscapedNewlines {
		expandEscapedNewlines(node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func expandEscapedNewlines(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, `\n`) {
		n.Value = strings.ReplaceAll(n.Value, `\n`, "\n")
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		expandEscapedNewlines(c)
	}
}
