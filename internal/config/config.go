// Package config loads assetview settings: the embedded defaults overlaid
// with an optional user YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/assetview/internal/export"
	"github.com/oakwood-commons/assetview/internal/formatter"
	"github.com/oakwood-commons/assetview/internal/render"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// EnvConfigFile names the environment variable holding a config path.
const EnvConfigFile = "ASSETVIEW_CONFIG"

// Config is the merged configuration.
type Config struct {
	Render render.Options `yaml:"render"`
	Theme  ThemeConfig    `yaml:"theme"`
	Export ExportConfig   `yaml:"export"`
	Drafts DraftsConfig   `yaml:"drafts"`
}

// ThemeConfig holds colors as ANSI indexes ("14") or hex ("#ff8800").
type ThemeConfig struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	True    string `yaml:"true"`
	False   string `yaml:"false"`
	Muted   string `yaml:"muted"`
	Link    string `yaml:"link"`
	Heading string `yaml:"heading"`
	ChipBG  string `yaml:"chip_bg"`
}

// ExportConfig sets defaults for the export command.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// DraftsConfig locates the drafts database. An empty path uses the default
// data directory.
type DraftsConfig struct {
	Path     string `yaml:"path"`
	Autosave bool   `yaml:"autosave"`
}

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// DefaultYAML returns a copy of the embedded defaults.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default returns the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode embedded default config: %w", err)
	}
	return cfg, nil
}

// ResolvePath picks the user config file: explicit, then $ASSETVIEW_CONFIG,
// then $XDG_CONFIG_HOME/assetview/config.yaml when it exists. It returns ""
// when there is none.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "assetview", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// Load merges the file at path (if any) over the defaults and validates the
// result. Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Merge(&cfg, data); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge overlays the YAML document in data onto cfg.
func Merge(cfg *Config, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return errors.New("decode config: top level must be a mapping")
	}
	if err := doc.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validColor(s string) bool {
	if hexColorPattern.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Render.ValidateExplicit(); err != nil {
		return &ValidationError{Field: "render", Message: err.Error()}
	}
	for _, f := range c.Theme.fields() {
		if f.val != "" && !validColor(f.val) {
			return &ValidationError{Field: "theme." + f.name, Message: fmt.Sprintf("invalid color %q", f.val)}
		}
	}
	if c.Export.Format != "" {
		if _, err := export.ParseFormat(c.Export.Format); err != nil {
			return &ValidationError{Field: "export.format", Message: err.Error()}
		}
	}
	return nil
}

type themeField struct {
	name string
	val  string
}

func (t ThemeConfig) fields() []themeField {
	return []themeField{
		{"key", t.Key}, {"value", t.Value}, {"true", t.True}, {"false", t.False},
		{"muted", t.Muted}, {"link", t.Link}, {"heading", t.Heading}, {"chip_bg", t.ChipBG},
	}
}

// FormatterTheme converts the configured colors. Empty entries keep the
// formatter defaults.
func (t ThemeConfig) FormatterTheme() formatter.Theme {
	c := func(s string) color.Color {
		if s == "" {
			return nil
		}
		return lipgloss.Color(s)
	}
	return formatter.Theme{
		Key:     c(t.Key),
		Value:   c(t.Value),
		True:    c(t.True),
		False:   c(t.False),
		Muted:   c(t.Muted),
		Link:    c(t.Link),
		Heading: c(t.Heading),
		ChipBG:  c(t.ChipBG),
	}
}

// YAML renders cfg as a YAML document.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
