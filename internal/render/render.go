// Package render turns a value into a bounded Node tree. Depth, array length
// and string length are all capped by Options, and whatever is cut stays
// reachable through placeholders, "+N more" counts and full-text fields.
package render

import (
	"fmt"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// Renderer renders values with fixed options. It holds no mutable state and
// may be shared between goroutines.
type Renderer struct {
	opts Options
}

// New returns a Renderer. Zero option fields take their defaults.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Render renders v as a top-level value.
func (r *Renderer) Render(v value.Value) *Node {
	return r.RenderAt(v, 0)
}

// RenderAt renders v at the given depth. It never panics; anything that goes
// wrong yields an unknown node carrying the value.
func (r *Renderer) RenderAt(v value.Value, depth int) (n *Node) {
	defer func() {
		if rec := recover(); rec != nil {
			n = unknownNode(v, depth)
			n.Note = fmt.Sprint(rec)
		}
	}()

	cat := Classify(v, r.opts)
	switch cat {
	case CategoryEmptyArray:
		return &Node{Kind: KindEmpty, Category: cat, Text: "empty array", Depth: depth}
	case CategoryEmptyObject:
		return &Node{Kind: KindEmpty, Category: cat, Text: "empty object", Depth: depth}
	case CategoryPrimitiveArray, CategoryObjectArray, CategoryObject:
		if depth > r.opts.MaxDepth {
			return placeholder(v, cat, depth)
		}
		if cat == CategoryObject {
			return r.renderObject(v, depth)
		}
		return r.renderArray(v, cat, depth)
	case CategoryUnknown:
		return unknownNode(v, depth)
	default:
		return r.renderPrimitive(v, cat, depth)
	}
}

// Expand renders the value behind a placeholder as a fresh top-level value.
// Any other node is returned unchanged.
func (r *Renderer) Expand(n *Node) *Node {
	if n == nil || n.Kind != KindPlaceholder {
		return n
	}
	return r.Render(n.Raw)
}

func placeholder(v value.Value, cat Category, depth int) *Node {
	text := fmt.Sprintf("[%d %s]", v.Len(), plural(v.Len(), "item", "items"))
	if cat == CategoryObject {
		text = fmt.Sprintf("{%d %s}", v.Len(), plural(v.Len(), "key", "keys"))
	}
	return &Node{
		Kind:     KindPlaceholder,
		Category: cat,
		Text:     text,
		Note:     "expand",
		Depth:    depth,
		Raw:      v,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
