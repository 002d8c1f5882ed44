package render

import (
	"github.com/samber/lo"

	"github.com/oakwood-commons/assetview/pkg/value"
)

type classified struct {
	entry value.Entry
	cat   Category
}

// renderObject renders a non-empty object: simple values as fields first, then
// array sections, then object sections. Each group keeps encounter order.
func (r *Renderer) renderObject(v value.Value, depth int) *Node {
	entries := lo.Map(v.Object().Entries(), func(e value.Entry, _ int) classified {
		return classified{entry: e, cat: Classify(e.Value, r.opts)}
	})
	simple := lo.Filter(entries, func(c classified, _ int) bool { return c.cat.IsSimple() })
	arrays := lo.Filter(entries, func(c classified, _ int) bool { return c.cat.IsArray() })
	objects := lo.Filter(entries, func(c classified, _ int) bool { return c.cat.IsObject() })

	n := &Node{Kind: KindObject, Category: CategoryObject, Depth: depth}
	for _, c := range simple {
		child := r.renderPrimitive(c.entry.Value, c.cat, depth+1)
		n.Children = append(n.Children, &Node{
			Kind:     KindField,
			Category: c.cat,
			Key:      c.entry.Key,
			Label:    HumanizeKey(c.entry.Key),
			Depth:    depth + 1,
			Children: []*Node{child},
		})
	}
	for _, group := range [][]classified{arrays, objects} {
		for _, c := range group {
			n.Children = append(n.Children, &Node{
				Kind:     KindSection,
				Category: c.cat,
				Key:      c.entry.Key,
				Label:    HumanizeKey(c.entry.Key),
				Depth:    depth + 1,
				Children: []*Node{r.RenderAt(c.entry.Value, depth+1)},
			})
		}
	}
	return n
}
