package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// Ellipsis ends a truncated string preview.
const Ellipsis = "…"

// linkEllipsis ends a shortened URL label.
const linkEllipsis = "..."

// renderPrimitive renders a null, boolean, number or string.
func (r *Renderer) renderPrimitive(v value.Value, cat Category, depth int) *Node {
	n := &Node{Kind: KindLeaf, Category: cat, Depth: depth}
	switch cat {
	case CategoryNull:
		n.Text = "null"
	case CategoryBoolean:
		n.Text = fmt.Sprint(v.Bool())
	case CategoryNumber, CategoryShortString:
		n.Text = v.Str()
	case CategoryLongString:
		s := v.Str()
		total := utf8.RuneCountInString(s)
		keep := min(r.opts.LongStringPreview, total)
		n.Kind = KindTruncated
		n.Text = string([]rune(s)[:keep]) + Ellipsis
		n.Note = fmt.Sprintf("(%d chars)", total)
		n.Full = s
		n.Omitted = total - keep
	case CategoryURLString:
		s := v.Str()
		n.Kind = KindLink
		n.Href = s
		n.Text = s
		if runes := []rune(s); len(runes) > r.opts.URLDisplayThreshold {
			keep := max(r.opts.URLDisplayThreshold-len(linkEllipsis), 1)
			n.Text = string(runes[:keep]) + linkEllipsis
		}
	default:
		return unknownNode(v, depth)
	}
	return n
}

func unknownNode(v value.Value, depth int) *Node {
	return &Node{
		Kind:     KindUnknown,
		Category: CategoryUnknown,
		Text:     "unrecognized type",
		Depth:    depth,
		Raw:      v,
	}
}
