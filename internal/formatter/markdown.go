package formatter

import (
	"strings"

	"github.com/oakwood-commons/assetview/internal/render"
)

// MarkdownOptions controls FormatMarkdown.
type MarkdownOptions struct {
	// Title adds a level-one heading.
	Title string
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

// escapeMarkdown makes text safe to place inside a Markdown paragraph.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(escapeScalarString(s))
}

// FormatMarkdown renders n as nested bullet lists. Links keep their full
// address as the target and the shortened label as the text.
func FormatMarkdown(n *render.Node, opts MarkdownOptions) string {
	var b strings.Builder
	if opts.Title != "" {
		b.WriteString("# " + escapeMarkdown(opts.Title) + "\n\n")
	}
	if n == nil {
		return b.String()
	}
	switch n.Kind {
	case render.KindObject, render.KindArray:
		mdBlock(&b, n, 0)
	default:
		b.WriteString(mdInline(n) + "\n")
	}
	return b.String()
}

func mdBullet(b *strings.Builder, level int, text string) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("- ")
	b.WriteString(text)
	b.WriteByte('\n')
}

func mdBlock(b *strings.Builder, n *render.Node, level int) {
	switch n.Kind {
	case render.KindObject, render.KindArray:
		for _, c := range n.Children {
			switch c.Kind {
			case render.KindField, render.KindSection, render.KindItem:
				mdLabeled(b, c, level)
			default:
				mdBullet(b, level, mdInline(c))
			}
		}
	default:
		mdBullet(b, level, mdInline(n))
	}
}

func mdLabeled(b *strings.Builder, c *render.Node, level int) {
	label := "**" + escapeMarkdown(c.Label) + "**"
	if len(c.Children) != 1 {
		mdBullet(b, level, label)
		return
	}
	child := c.Children[0]
	switch child.Kind {
	case render.KindObject, render.KindArray:
		if c.Kind == render.KindItem {
			mdBullet(b, level, label)
		} else {
			mdBullet(b, level, label+":")
		}
		mdBlock(b, child, level+1)
	default:
		mdBullet(b, level, label+": "+mdInline(child))
	}
}

func mdInline(n *render.Node) string {
	switch n.Kind {
	case render.KindLink:
		return "[" + escapeMarkdown(n.Text) + "](" + escapeURL(n.Href) + ")"
	case render.KindTruncated:
		return escapeMarkdown(n.Text) + " _" + escapeMarkdown(n.Note) + "_"
	case render.KindChips:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c.Kind == render.KindMore {
				parts = append(parts, "_"+escapeMarkdown(c.Label)+"_")
				continue
			}
			if c.Href != "" {
				parts = append(parts, "["+escapeMarkdown(c.Text)+"]("+escapeURL(c.Href)+")")
				continue
			}
			parts = append(parts, "`"+strings.ReplaceAll(escapeScalarString(c.Text), "`", "'")+"`")
		}
		return strings.Join(parts, " ")
	case render.KindMore:
		return "_" + escapeMarkdown(n.Label) + "_"
	case render.KindEmpty:
		return "_" + escapeMarkdown(n.Text) + "_"
	case render.KindPlaceholder:
		return "_" + escapeMarkdown(n.Text) + " (expand in the viewer)_"
	case render.KindUnknown:
		return "_" + escapeMarkdown(n.Text) + "_"
	default:
		return escapeMarkdown(n.Text)
	}
}

// escapeURL keeps a link target inside its parentheses.
func escapeURL(u string) string {
	r := strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29", "<", "%3C", ">", "%3E")
	return r.Replace(u)
}
