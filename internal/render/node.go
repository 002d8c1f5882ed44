package render

import "github.com/oakwood-commons/assetview/pkg/value"

// NodeKind identifies the role of a Node in the rendered tree.
type NodeKind int

const (
	// KindLeaf is a primitive shown verbatim.
	KindLeaf NodeKind = iota
	// KindLink is a URL; Href holds the full address, Text the label.
	KindLink
	// KindTruncated is a long string preview; Full holds the whole string.
	KindTruncated
	// KindChips is a primitive array laid out inline.
	KindChips
	// KindChip is one item of a KindChips node.
	KindChip
	// KindArray is an array of objects.
	KindArray
	// KindItem wraps one rendered element of a KindArray, labeled "Item N".
	KindItem
	// KindObject holds Field rows followed by Section blocks.
	KindObject
	// KindField is a key with a simple value as its only child.
	KindField
	// KindSection is a key with an array or object block as its only child.
	KindSection
	// KindMore reports how many items were left out.
	KindMore
	// KindPlaceholder stands in for a container past the depth bound.
	KindPlaceholder
	// KindEmpty marks an empty array or object.
	KindEmpty
	// KindUnknown is a value that could not be classified.
	KindUnknown
)

var nodeKindNames = [...]string{
	"leaf", "link", "truncated", "chips", "chip", "array", "item",
	"object", "field", "section", "more", "placeholder", "empty", "unknown",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "invalid"
	}
	return nodeKindNames[k]
}

// Node is one element of a rendered view. Formatters and the interactive
// viewer consume it; it carries no styling.
type Node struct {
	Kind     NodeKind
	Category Category
	// Key is the raw object key for fields and sections.
	Key string
	// Label is the heading: a humanized key, "Item 3", "+7 more".
	Label string
	// Text is the display text of a value.
	Text string
	// Note is a secondary annotation such as "(250 chars)".
	Note string
	// Full is the untruncated string behind a truncated preview.
	Full string
	// Href is the complete URL of a link.
	Href string
	// Omitted counts items or runes left out of the view.
	Omitted int
	Depth   int
	// Raw is the value behind a placeholder or unknown node.
	Raw      value.Value
	Children []*Node
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node of the given kind in depth-first order.
func (n *Node) Find(kind NodeKind) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of the given kind in depth-first order.
func (n *Node) FindAll(kind NodeKind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Child returns the field or section with the given raw key.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if (c.Kind == KindField || c.Kind == KindSection) && c.Key == key {
			return c
		}
	}
	return nil
}

// CopyText is what a copy action yields for n: the whole string of a
// truncated value, the address of a link, the JSON of a placeholder's value,
// and the display text otherwise.
func (n *Node) CopyText() string {
	if n == nil {
		return ""
	}
	switch {
	case n.Full != "":
		return n.Full
	case n.Href != "":
		return n.Href
	}
	switch n.Kind {
	case KindPlaceholder, KindUnknown:
		out, err := value.Encode(n.Raw, "  ")
		if err != nil {
			return n.Text
		}
		return string(out)
	case KindField:
		if len(n.Children) == 1 {
			return n.Children[0].CopyText()
		}
	}
	return n.Text
}
