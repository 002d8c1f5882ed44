package render

import (
	"fmt"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// renderArray renders a non-empty array. Primitive items become chips; any
// other array shows its first items through the facade and summarizes the
// rest.
func (r *Renderer) renderArray(v value.Value, cat Category, depth int) *Node {
	items := v.Items()
	if cat == CategoryPrimitiveArray {
		return r.renderChips(items, depth)
	}

	n := &Node{
		Kind:     KindArray,
		Category: cat,
		Text:     fmt.Sprintf("%d items", len(items)),
		Depth:    depth,
	}
	shown := min(len(items), r.opts.MaxArrayItemsShown)
	for i, item := range items[:shown] {
		n.Children = append(n.Children, &Node{
			Kind:     KindItem,
			Category: Classify(item, r.opts),
			Label:    fmt.Sprintf("Item %d", i+1),
			Depth:    depth + 1,
			Children: []*Node{r.RenderAt(item, depth+1)},
		})
	}
	if omitted := len(items) - shown; omitted > 0 {
		n.Children = append(n.Children, moreNode(omitted, depth+1))
	}
	return n
}

func (r *Renderer) renderChips(items []value.Value, depth int) *Node {
	n := &Node{
		Kind:     KindChips,
		Category: CategoryPrimitiveArray,
		Text:     fmt.Sprintf("%d items", len(items)),
		Depth:    depth,
	}
	shown := len(items)
	if limit := r.opts.MaxPrimitiveItemsShown; limit > 0 && limit < shown {
		shown = limit
	}
	for _, item := range items[:shown] {
		chip := r.renderPrimitive(item, Classify(item, r.opts), depth+1)
		chip.Kind = KindChip
		n.Children = append(n.Children, chip)
	}
	if omitted := len(items) - shown; omitted > 0 {
		n.Children = append(n.Children, moreNode(omitted, depth+1))
	}
	return n
}

func moreNode(omitted, depth int) *Node {
	return &Node{
		Kind:    KindMore,
		Label:   fmt.Sprintf("+%d more", omitted),
		Omitted: omitted,
		Depth:   depth,
	}
}
