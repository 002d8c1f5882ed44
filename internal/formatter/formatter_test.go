package formatter

import (
	"strings"
	"testing"

	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/value"
)

func renderJSON(t *testing.T, s string, opts render.Options) *render.Node {
	t.Helper()
	v, err := value.DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return render.New(opts).Render(v)
}

func TestStringify(t *testing.T) {
	obj := value.NewObject().Set("b", value.Int(1)).Set("a", value.Array(value.String("x"))).Value()
	tests := []struct {
		in   value.Value
		want string
	}{
		{value.String("hello"), "hello"},
		{value.String("line1\nline2"), `line1\nline2`},
		{value.String("a\r\nb"), `a\nb`},
		{value.Null(), "null"},
		{value.Bool(true), "true"},
		{value.Number("0.830"), "0.830"},
		{obj, `{"b":1,"a":["x"]}`},
		{value.Invalid(struct{}{}), "<invalid>"},
	}
	for _, tt := range tests {
		if got := Stringify(tt.in); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTextFlatObject(t *testing.T) {
	n := renderJSON(t, `{"name": "Acme", "score": 0.83, "tags": ["x","y"]}`, render.Options{})
	got := FormatText(n, TextOptions{NoColor: true})
	want := "Name:  Acme\nScore: 0.83\nTags:\n  [x] [y]\n"
	if got != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTextAlignsWideLabels(t *testing.T) {
	n := renderJSON(t, `{"名前": "x", "id": 1}`, render.Options{})
	got := FormatText(n, TextOptions{NoColor: true})
	want := "名前: x\nId:   1\n"
	if got != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatTextArraysAndPlaceholders(t *testing.T) {
	n := renderJSON(t, `{
		"items": [{"id": 1}, {"id": 2}, {"id": 3}],
		"empty": [],
		"deep": {"a": {"b": {"c": 1}}}
	}`, render.Options{MaxArrayItemsShown: 2, MaxDepth: 2})
	got := FormatText(n, TextOptions{NoColor: true})
	for _, want := range []string{
		"Items:\n  Item 1\n    Id: 1\n  Item 2\n    Id: 2\n  +1 more\n",
		"Empty: (empty array)\n",
		"Deep:\n  A:\n    B: ▸ {1 key} (expand)\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatTextLongString(t *testing.T) {
	n := renderJSON(t, `{"notes": "`+strings.Repeat("A", 250)+`"}`, render.Options{LongStringThreshold: 100})
	got := FormatText(n, TextOptions{NoColor: true})
	want := "Notes: " + strings.Repeat("A", 100) + "… (250 chars)\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTextWrapsChips(t *testing.T) {
	n := renderJSON(t, `["alpha", "beta", "gamma", "delta"]`, render.Options{})
	got := FormatText(n, TextOptions{NoColor: true, Width: 16})
	want := "[alpha] [beta]\n[gamma] [delta]\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTextScalarRoot(t *testing.T) {
	n := renderJSON(t, `"multi\nline"`, render.Options{})
	if got := FormatText(n, TextOptions{NoColor: true}); got != "multi\\nline\n" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTextColorKeepsContent(t *testing.T) {
	n := renderJSON(t, `{"ok": true, "bad": false, "none": null}`, render.Options{})
	got := FormatText(n, TextOptions{})
	for _, want := range []string{"true", "false", "null", "Ok:"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestFormatYAMLKeepsOrder(t *testing.T) {
	v, err := value.DecodeJSON([]byte(`{"z": 1, "a": "x\ny"}`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := FormatYAML(v, YAMLFormatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "z: 1\na: |-\n  x\n  y\n" {
		t.Fatalf("unexpected YAML:\n%s", got)
	}

	escaped := value.NewObject().Set("s", value.String(`one\ntwo`)).Value()
	got, err = FormatYAML(escaped, YAMLFormatOptions{ExpandEscapedNewlines: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "s: |-\n  one\n  two\n") {
		t.Fatalf("expected literal block, got:\n%s", got)
	}
}

func TestFormatYAMLRejectsInvalid(t *testing.T) {
	if _, err := FormatYAML(value.Invalid(make(chan int)), YAMLFormatOptions{}); err == nil {
		t.Fatal("expected error for invalid value")
	}
}
