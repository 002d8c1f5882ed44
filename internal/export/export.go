// Package export serializes values for download: JSON, CSV and plain text,
// plus YAML, TOML, Markdown and HTML. The To* functions are pure; Exporter
// writes files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/assetview/internal/formatter"
	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/value"
)

// ToJSON returns v as JSON indented by two spaces, keys in original order.
// Decoding the result yields a value equal to v.
func ToJSON(v value.Value) (string, error) {
	out, err := value.Encode(v, "  ")
	if err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return string(out), nil
}

// ToCSV flattens v into CSV. This is lossy:
//   - an array whose first element is an object uses that element's keys as
//     the header; later elements with other keys lose them, missing keys are
//     empty, and non-object elements put their JSON in the first column
//   - a single object becomes key,value rows with JSON values
//   - anything else is a single "value" column
//
// Nested values in cells are compact JSON.
func ToCSV(v value.Value) (string, error) {
	var rows [][]string
	switch v.Kind() {
	case value.KindArray:
		items := v.Items()
		if len(items) == 0 {
			return "", nil
		}
		if first := items[0]; first.Kind() == value.KindObject {
			header := first.Object().Keys()
			rows = append(rows, header)
			for _, item := range items {
				row := make([]string, len(header))
				if item.Kind() != value.KindObject {
					cell, err := jsonCell(item)
					if err != nil {
						return "", err
					}
					row[0] = cell
					rows = append(rows, row)
					continue
				}
				for i, key := range header {
					field, ok := item.Get(key)
					if !ok {
						continue
					}
					cell, err := csvCell(field)
					if err != nil {
						return "", err
					}
					row[i] = cell
				}
				rows = append(rows, row)
			}
		} else {
			rows = append(rows, []string{"value"})
			for _, item := range items {
				cell, err := csvCell(item)
				if err != nil {
					return "", err
				}
				rows = append(rows, []string{cell})
			}
		}
	case value.KindObject:
		rows = append(rows, []string{"key", "value"})
		for _, e := range v.Object().Entries() {
			cell, err := jsonCell(e.Value)
			if err != nil {
				return "", err
			}
			rows = append(rows, []string{e.Key, cell})
		}
	default:
		cell, err := csvCell(v)
		if err != nil {
			return "", err
		}
		rows = [][]string{{"value"}, {cell}}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing CSV: %w", err)
	}
	return buf.String(), nil
}

// csvCell keeps primitives as text and stringifies containers.
func csvCell(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindString, value.KindNumber:
		return v.Str(), nil
	case value.KindBool, value.KindNull:
		return v.String(), nil
	default:
		return jsonCell(v)
	}
}

func jsonCell(v value.Value) (string, error) {
	out, err := value.Encode(v, "")
	if err != nil {
		return "", fmt.Errorf("encoding CSV cell: %w", err)
	}
	return string(out), nil
}

// PlainTextFormatter turns a value into text for ToPlainText.
type PlainTextFormatter func(value.Value) (string, error)

// ToPlainText applies f to v, or returns ToJSON(v) when f is nil.
func ToPlainText(v value.Value, f PlainTextFormatter) (string, error) {
	if f == nil {
		return ToJSON(v)
	}
	return f(v)
}

// TextFormatter renders values through r as uncolored indented text.
func TextFormatter(r *render.Renderer) PlainTextFormatter {
	return func(v value.Value) (string, error) {
		return formatter.FormatText(r.Render(v), formatter.TextOptions{NoColor: true}), nil
	}
}

// ToYAML returns v as YAML with keys in original order.
func ToYAML(v value.Value) (string, error) {
	return formatter.FormatYAML(v, formatter.YAMLFormatOptions{})
}

// ToTOML returns v as TOML. TOML documents are tables, so only objects are
// accepted; keys come out sorted. TOML has no null, so a null anywhere in v
// is an error naming its path.
func ToTOML(v value.Value) (string, error) {
	if v.Kind() != value.KindObject {
		return "", fmt.Errorf("%w: TOML needs an object at the top level, got %s", ErrUnsupportedFormat, v.Kind())
	}
	if path, ok := findNull(v, ""); ok {
		return "", fmt.Errorf("%w: TOML cannot hold the null at %s", ErrUnsupportedFormat, path)
	}
	if _, err := value.Encode(v, ""); err != nil {
		return "", fmt.Errorf("encoding TOML: %w", err)
	}
	out, err := toml.Marshal(value.ToAny(v))
	if err != nil {
		return "", fmt.Errorf("encoding TOML: %w", err)
	}
	return string(out), nil
}

// findNull returns the path of the first null in v, depth first.
func findNull(v value.Value, path string) (string, bool) {
	switch v.Kind() {
	case value.KindNull:
		return path, true
	case value.KindArray:
		for i, item := range v.Items() {
			if p, ok := findNull(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				return p, true
			}
		}
	case value.KindObject:
		for _, e := range v.Object().Entries() {
			child := e.Key
			if path != "" {
				child = path + "." + e.Key
			}
			if p, ok := findNull(e.Value, child); ok {
				return p, true
			}
		}
	}
	return "", false
}

// ToMarkdown renders v through r as Markdown.
func ToMarkdown(v value.Value, r *render.Renderer, title string) string {
	return formatter.FormatMarkdown(r.Render(v), formatter.MarkdownOptions{Title: title})
}

// ToHTML renders v through r as a standalone HTML page.
func ToHTML(v value.Value, r *render.Renderer, title string) string {
	return formatter.FormatHTML(r.Render(v), formatter.HTMLOptions{Title: title, Page: true})
}

// Render serializes v in format f. r is used by the rendered formats and
// defaults to the standard options.
func Render(v value.Value, f Format, r *render.Renderer, title string) (string, error) {
	if r == nil {
		r = render.New(render.DefaultOptions())
	}
	switch f {
	case FormatJSON:
		return ToJSON(v)
	case FormatCSV:
		return ToCSV(v)
	case FormatText:
		return ToPlainText(v, nil)
	case FormatYAML:
		return ToYAML(v)
	case FormatTOML:
		return ToTOML(v)
	case FormatMarkdown:
		return ToMarkdown(v, r, title), nil
	case FormatHTML:
		return ToHTML(v, r, title), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}
