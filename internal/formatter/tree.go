package formatter

import (
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/assetview/internal/render"
)

// TreeOptions controls FormatTree.
type TreeOptions struct {
	// NoValues hides values at leaves (structure only).
	NoValues bool
}

// FormatTree renders n as an ASCII tree. Sections become branches, fields
// and collapsed containers become leaves.
func FormatTree(n *render.Node, opts TreeOptions) string {
	tree := treeprint.New()
	buildTree(tree, n, opts)
	return tree.String()
}

func buildTree(branch treeprint.Tree, n *render.Node, opts TreeOptions) {
	if n == nil {
		return
	}
	switch n.Kind {
	case render.KindObject:
		for _, c := range n.Children {
			addLabeled(branch, c.Label, c.Children, opts)
		}
	case render.KindArray:
		for _, c := range n.Children {
			if c.Kind == render.KindItem {
				addLabeled(branch, c.Label, c.Children, opts)
				continue
			}
			branch.AddNode(plainInline(c))
		}
	default:
		branch.AddNode(plainInline(n))
	}
}

// addLabeled adds a field, section or item. Values that fit on one line are
// attached to the label; containers open a branch.
func addLabeled(branch treeprint.Tree, label string, children []*render.Node, opts TreeOptions) {
	if len(children) != 1 {
		branch.AddNode(label)
		return
	}
	child := children[0]
	switch child.Kind {
	case render.KindObject, render.KindArray:
		buildTree(branch.AddBranch(label), child, opts)
	default:
		if opts.NoValues {
			branch.AddNode(label)
			return
		}
		branch.AddNode(label + ": " + plainInline(child))
	}
}

// plainInline is the uncolored one-line form of a node.
func plainInline(n *render.Node) string {
	switch n.Kind {
	case render.KindChips:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == render.KindMore {
				parts = append(parts, c.Label)
				continue
			}
			parts = append(parts, escapeScalarString(c.Text))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case render.KindTruncated:
		return escapeScalarString(n.Text) + " " + n.Note
	case render.KindMore:
		return n.Label
	case render.KindEmpty:
		return "(" + n.Text + ")"
	case render.KindPlaceholder:
		return n.Text + " …"
	case render.KindUnknown:
		return "<" + n.Text + ">"
	default:
		return escapeScalarString(n.Text)
	}
}
