package ui

import (
	"strings"

	"github.com/oakwood-commons/assetview/internal/render"
)

// line is one row of the view tab. node is what enter and copy act on;
// parent and index locate it so an expanded placeholder can replace it.
type line struct {
	depth  int
	label  string
	text   string
	node   *render.Node
	parent *render.Node
	index  int
	muted  bool
}

func (l line) plain() string {
	if l.label == "" {
		return l.text
	}
	if l.text == "" {
		return l.label
	}
	return l.label + ": " + l.text
}

type lineBuilder struct {
	open  map[*render.Node]bool
	lines []line
}

func buildLines(root *render.Node, open map[*render.Node]bool) []line {
	b := &lineBuilder{open: open}
	b.add(root, nil, 0, 0)
	return b.lines
}

// inline reports whether n fits on its parent's line.
func inline(n *render.Node) bool {
	switch n.Kind {
	case render.KindObject, render.KindArray:
		return false
	}
	return true
}

func (b *lineBuilder) emit(l line) {
	parts := strings.Split(l.text, "\n")
	l.text = parts[0]
	b.lines = append(b.lines, l)
	for _, p := range parts[1:] {
		cont := l
		cont.label = ""
		cont.text = p
		cont.depth = l.depth + 1
		b.lines = append(b.lines, cont)
	}
}

func (b *lineBuilder) add(n, parent *render.Node, index, depth int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case render.KindObject, render.KindArray:
		for i, c := range n.Children {
			b.add(c, n, i, depth)
		}
	case render.KindField, render.KindSection, render.KindItem:
		if len(n.Children) != 1 {
			b.emit(line{depth: depth, label: n.Label, node: n, parent: parent, index: index})
			return
		}
		child := n.Children[0]
		if inline(child) {
			b.emit(line{depth: depth, label: n.Label, text: b.valueText(child), node: child, parent: n, index: 0, muted: mutedKind(child)})
			return
		}
		b.emit(line{depth: depth, label: n.Label, node: n, parent: parent, index: index})
		b.add(child, n, 0, depth+1)
	case render.KindMore:
		b.emit(line{depth: depth, text: n.Label, node: n, parent: parent, index: index, muted: true})
	default:
		b.emit(line{depth: depth, text: b.valueText(n), node: n, parent: parent, index: index, muted: mutedKind(n)})
	}
}

func mutedKind(n *render.Node) bool {
	switch n.Kind {
	case render.KindPlaceholder, render.KindEmpty, render.KindUnknown:
		return true
	}
	return n.Category == render.CategoryNull
}

func (b *lineBuilder) valueText(n *render.Node) string {
	switch n.Kind {
	case render.KindTruncated:
		if b.open[n] {
			return n.Full
		}
		return n.Text + " " + n.Note
	case render.KindPlaceholder:
		return "▸ " + n.Text + " (expand)"
	case render.KindEmpty:
		return "(" + n.Text + ")"
	case render.KindChips:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == render.KindMore {
				parts = append(parts, c.Label)
				continue
			}
			parts = append(parts, "["+c.Text+"]")
		}
		return strings.Join(parts, " ")
	case render.KindUnknown:
		if n.Note != "" {
			return n.Text + " " + n.Note
		}
	}
	return n.Text
}

// copyText is what the copy action yields for n.
func copyText(n *render.Node) string {
	if n.Kind != render.KindChips {
		return n.CopyText()
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == render.KindChip {
			parts = append(parts, c.CopyText())
		}
	}
	return strings.Join(parts, "\n")
}

func filterLines(lines []line, term string) []line {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lines
	}
	out := make([]line, 0, len(lines))
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l.plain()), term) {
			out = append(out, l)
		}
	}
	return out
}
