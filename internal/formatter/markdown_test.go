package formatter

import (
	"strings"
	"testing"

	"github.com/oakwood-commons/assetview/internal/render"
)

func TestFormatMarkdown(t *testing.T) {
	n := renderJSON(t, `{
		"name": "Acme *Corp*",
		"site": "https://acme.example/about",
		"tags": ["x", "y"],
		"items": [{"id": 1}, {"id": 2}]
	}`, render.Options{MaxArrayItemsShown: 1})
	got := FormatMarkdown(n, MarkdownOptions{Title: "Report"})
	want := "# Report\n\n" +
		"- **Name**: Acme \\*Corp\\*\n" +
		"- **Site**: [https://acme.example/about](https://acme.example/about)\n" +
		"- **Tags**: `x` `y`\n" +
		"- **Items**:\n" +
		"  - **Item 1**\n" +
		"    - **Id**: 1\n" +
		"  - _+1 more_\n"
	if got != want {
		t.Fatalf("unexpected markdown:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatHTMLLinks(t *testing.T) {
	url := "https://acme.example/reports/" + strings.Repeat("q", 60)
	n := renderJSON(t, `{"report": "`+url+`", "note": "<script>alert(1)</script>"}`, render.Options{})
	got := FormatHTML(n, HTMLOptions{})

	if !strings.Contains(got, `href="`+url+`"`) {
		t.Errorf("href must carry the full URL:\n%s", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("expected target=_blank:\n%s", got)
	}
	if !strings.Contains(got, "noopener") || !strings.Contains(got, "noreferrer") {
		t.Errorf("expected noopener and noreferrer:\n%s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must be escaped:\n%s", got)
	}
}

func TestFormatHTMLPage(t *testing.T) {
	n := renderJSON(t, `{"a": 1}`, render.Options{})
	got := FormatHTML(n, HTMLOptions{Title: "A & B", Page: true})
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("expected a document:\n%s", got)
	}
	if !strings.Contains(got, "<title>A &amp; B</title>") {
		t.Errorf("expected escaped title:\n%s", got)
	}
}
