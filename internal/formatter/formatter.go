// Package formatter writes rendered Node trees as styled text, ASCII trees,
// Markdown and HTML.
package formatter

import (
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/oakwood-commons/assetview/pkg/value"
)

var (
	defaultKeyColor     = lipgloss.Color("14")
	defaultValueColor   = lipgloss.Color("252")
	defaultTrueColor    = lipgloss.Color("10")
	defaultFalseColor   = lipgloss.Color("9")
	defaultMutedColor   = lipgloss.Color("243")
	defaultLinkColor    = lipgloss.Color("12")
	defaultHeadingColor = lipgloss.Color("13")
	defaultChipColor    = lipgloss.Color("236")

	keyStyle     lipgloss.Style
	valueStyle   lipgloss.Style
	trueStyle    lipgloss.Style
	falseStyle   lipgloss.Style
	mutedStyle   lipgloss.Style
	linkStyle    lipgloss.Style
	headingStyle lipgloss.Style
	chipStyle    lipgloss.Style
)

// Theme sets the colors used by FormatText. Nil fields keep the defaults.
type Theme struct {
	Key     color.Color
	Value   color.Color
	True    color.Color
	False   color.Color
	Muted   color.Color
	Link    color.Color
	Heading color.Color
	ChipBG  color.Color
}

func pick(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}

func applyTheme(t Theme) {
	keyStyle = lipgloss.NewStyle().Foreground(pick(t.Key, defaultKeyColor))
	valueStyle = lipgloss.NewStyle().Foreground(pick(t.Value, defaultValueColor))
	trueStyle = lipgloss.NewStyle().Foreground(pick(t.True, defaultTrueColor))
	falseStyle = lipgloss.NewStyle().Foreground(pick(t.False, defaultFalseColor))
	mutedStyle = lipgloss.NewStyle().Foreground(pick(t.Muted, defaultMutedColor)).Italic(true)
	linkStyle = lipgloss.NewStyle().Foreground(pick(t.Link, defaultLinkColor)).Underline(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(pick(t.Heading, defaultHeadingColor))
	chipStyle = lipgloss.NewStyle().Background(pick(t.ChipBG, defaultChipColor)).Padding(0, 1)
}

// SetTheme replaces the package styles.
func SetTheme(t Theme) {
	applyTheme(t)
}

//nolint:gochecknoinits // default theme for package consumers
func init() {
	applyTheme(Theme{})
}

// Stringify returns a single-line form of v: strings as-is with line breaks
// escaped, numbers verbatim, containers as compact JSON.
func Stringify(v value.Value) string {
	switch v.Kind() {
	case value.KindString:
		return escapeScalarString(v.Str())
	case value.KindNumber:
		return v.Str()
	case value.KindInvalid:
		return "<invalid>"
	default:
		return v.String()
	}
}

// escapeScalarString flattens line breaks so a value stays on one row.
func escapeScalarString(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.ReplaceAll(s, "\t", `\t`)
}

// TerminalWidth returns the width of stdout, or 120 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
