package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/assetview/internal/render"
)

// TextOptions controls FormatText.
type TextOptions struct {
	// NoColor disables styling.
	NoColor bool
	// Indent is the number of spaces per nesting level (default 2).
	Indent int
	// Width wraps chip rows; 0 disables wrapping.
	Width int
}

type textWriter struct {
	b    strings.Builder
	opts TextOptions
}

// FormatText renders n as indented key/value text. Field labels within one
// object are aligned by display width.
func FormatText(n *render.Node, opts TextOptions) string {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	w := &textWriter{opts: opts}
	w.block(n, 0)
	return w.b.String()
}

func (w *textWriter) style(s lipgloss.Style, text string) string {
	if w.opts.NoColor || text == "" {
		return text
	}
	return s.Render(text)
}

func (w *textWriter) line(level int, text string) {
	w.b.WriteString(strings.Repeat(" ", level*w.opts.Indent))
	w.b.WriteString(text)
	w.b.WriteByte('\n')
}

func (w *textWriter) block(n *render.Node, level int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case render.KindObject:
		w.object(n, level)
	case render.KindArray:
		for _, c := range n.Children {
			switch c.Kind {
			case render.KindItem:
				w.line(level, w.style(headingStyle, c.Label))
				for _, inner := range c.Children {
					w.block(inner, level+1)
				}
			default:
				w.line(level, w.inline(c))
			}
		}
	case render.KindChips:
		w.chips(n, level)
	default:
		w.line(level, w.inline(n))
	}
}

func (w *textWriter) object(n *render.Node, level int) {
	labelWidth := 0
	for _, c := range n.Children {
		if c.Kind == render.KindField {
			labelWidth = max(labelWidth, runewidth.StringWidth(c.Label)+1)
		}
	}
	for _, c := range n.Children {
		switch c.Kind {
		case render.KindField:
			label := w.style(keyStyle, padRight(c.Label+":", labelWidth))
			var val string
			if len(c.Children) > 0 {
				val = w.inline(c.Children[0])
			}
			w.line(level, label+" "+val)
		case render.KindSection:
			if len(c.Children) == 1 && isCollapsed(c.Children[0]) {
				w.line(level, w.style(keyStyle, c.Label+":")+" "+w.inline(c.Children[0]))
				continue
			}
			w.line(level, w.style(keyStyle, c.Label+":"))
			for _, inner := range c.Children {
				w.block(inner, level+1)
			}
		default:
			w.block(c, level)
		}
	}
}

func (w *textWriter) chips(n *render.Node, level int) {
	limit := w.opts.Width - level*w.opts.Indent
	var row []string
	rowWidth := 0
	flush := func() {
		if len(row) > 0 {
			w.line(level, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
	}
	for _, c := range n.Children {
		var cell string
		if c.Kind == render.KindMore {
			cell = w.inline(c)
		} else {
			cell = w.chip(c)
		}
		cw := lipgloss.Width(cell)
		if w.opts.Width > 0 && len(row) > 0 && rowWidth+1+cw > limit {
			flush()
		}
		if len(row) > 0 {
			rowWidth++
		}
		row = append(row, cell)
		rowWidth += cw
	}
	flush()
}

func (w *textWriter) chip(n *render.Node) string {
	text := escapeScalarString(n.Text)
	if w.opts.NoColor {
		return "[" + text + "]"
	}
	return chipStyle.Render(text)
}

// inline renders a value that fits on one line.
func (w *textWriter) inline(n *render.Node) string {
	switch n.Kind {
	case render.KindLeaf, render.KindChip:
		text := escapeScalarString(n.Text)
		switch n.Category {
		case render.CategoryNull:
			return w.style(mutedStyle, text)
		case render.CategoryBoolean:
			if text == "true" {
				return w.style(trueStyle, text)
			}
			return w.style(falseStyle, text)
		default:
			return w.style(valueStyle, text)
		}
	case render.KindLink:
		return w.style(linkStyle, n.Text)
	case render.KindTruncated:
		return w.style(valueStyle, escapeScalarString(n.Text)) + " " + w.style(mutedStyle, n.Note)
	case render.KindMore:
		return w.style(mutedStyle, n.Label)
	case render.KindEmpty:
		return w.style(mutedStyle, "("+n.Text+")")
	case render.KindPlaceholder:
		return w.style(mutedStyle, "▸ "+n.Text+" ("+n.Note+")")
	case render.KindUnknown:
		return w.style(mutedStyle, "<"+n.Text+">")
	default:
		return n.Text
	}
}

// isCollapsed reports whether a container node prints on its owner's line.
func isCollapsed(n *render.Node) bool {
	return n.Kind == render.KindEmpty || n.Kind == render.KindPlaceholder
}
