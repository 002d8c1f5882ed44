package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an export target.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatText     Format = "txt"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ErrUnsupportedFormat is returned for an unknown format name, or a format
// that cannot hold the given value.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var formatAliases = map[string]Format{
	"json":     FormatJSON,
	"csv":      FormatCSV,
	"txt":      FormatText,
	"text":     FormatText,
	"plain":    FormatText,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
	"toml":     FormatTOML,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
	"html":     FormatHTML,
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatText, FormatYAML, FormatTOML, FormatMarkdown, FormatHTML}
}

// ParseFormat accepts a format name or one of its aliases, case-insensitive.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension is the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}
