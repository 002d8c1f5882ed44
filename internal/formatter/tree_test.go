package formatter

import (
	"strings"
	"testing"

	"github.com/oakwood-commons/assetview/internal/render"
)

func TestFormatTree(t *testing.T) {
	n := renderJSON(t, `{
		"name": "alice",
		"tags": ["x", "y"],
		"server": {"host": "localhost", "port": 8080},
		"items": [{"id": 1}, {"id": 2}, {"id": 3}]
	}`, render.Options{MaxArrayItemsShown: 2})
	got := FormatTree(n, TreeOptions{})

	if !strings.HasPrefix(got, ".") {
		t.Errorf("expected root marker, got:\n%s", got)
	}
	for _, want := range []string{"Name: alice", "Tags: [x, y]", "Server", "Host: localhost", "Port: 8080", "Item 1", "Id: 1", "+1 more"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Index(got, "Tags") > strings.Index(got, "Server") {
		t.Errorf("array sections should precede object sections:\n%s", got)
	}
}

func TestFormatTreeNoValues(t *testing.T) {
	n := renderJSON(t, `{"name": "alice", "nested": {"k": "v"}}`, render.Options{})
	got := FormatTree(n, TreeOptions{NoValues: true})
	if strings.Contains(got, "alice") || strings.Contains(got, ": v") {
		t.Errorf("values should be hidden:\n%s", got)
	}
	if !strings.Contains(got, "K") {
		t.Errorf("keys should remain:\n%s", got)
	}
}

func TestFormatTreeCollapsedContainers(t *testing.T) {
	n := renderJSON(t, `{"a": [], "b": {}, "c": {"d": {"e": 1}}}`, render.Options{MaxDepth: 1})
	got := FormatTree(n, TreeOptions{})
	for _, want := range []string{"A: (empty array)", "B: (empty object)", "D: {1 key} …"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}
