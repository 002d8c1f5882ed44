package formatter

import (
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/assetview/internal/render"
)

// HTMLOptions controls FormatHTML.
type HTMLOptions struct {
	// Title is used for the page title and a level-one heading.
	Title string
	// Page wraps the fragment in a complete HTML document.
	Page bool
}

// FormatHTML renders n to HTML. External links open in a new tab without
// referrer or opener.
func FormatHTML(n *render.Node, opts HTMLOptions) string {
	md := FormatMarkdown(n, MarkdownOptions{Title: opts.Title})

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))

	flags := html.SkipHTML | html.HrefTargetBlank | html.NoopenerLinks | html.NoreferrerLinks
	renderer := html.NewRenderer(html.RendererOptions{Flags: flags})
	body := string(markdown.Render(doc, renderer))

	if !opts.Page {
		return body
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", stdhtml.EscapeString(opts.Title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
