package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// ErrEmptyInput is returned when there is nothing to parse.
var ErrEmptyInput = errors.New("empty input")

var (
	// [server], [[items]], ["table name"], [database.credentials]
	// JSON arrays such as [1, 2] do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// name = "value", database.host = "localhost"
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// LoadData parses input into one value per document, detecting the format:
// multi-document YAML, NDJSON, TOML, JSON, then single-document YAML.
func LoadData(input string) ([]value.Value, error) {
	return LoadDataWithLogger(input, logr.Discard())
}

// LoadDataWithLogger is LoadData with format decisions logged at V(1).
func LoadDataWithLogger(input string, log logr.Logger) ([]value.Value, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	if strings.HasPrefix(input, "---") || strings.Contains(input, "\n---") {
		log.V(1).Info("detected input format", "format", "yaml-multi")
		return loadMultiDocYAML(input)
	}

	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		log.V(1).Info("detected input format", "format", "ndjson")
		return loadNDJSON(input)
	}

	if isLikelyTOML(input) {
		log.V(1).Info("detected input format", "format", "toml")
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		v, err := value.DecodeJSON([]byte(input))
		if err == nil {
			log.V(1).Info("detected input format", "format", "json")
			return []value.Value{v}, nil
		}
		// flow-style YAML such as {a: 1} still parses below
		log.V(1).Info("JSON parse failed, trying YAML", "error", err.Error())
		docs, yerr := loadYAML(input)
		if yerr != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return docs, nil
	}

	log.V(1).Info("detected input format", "format", "yaml")
	return loadYAML(input)
}

// LoadRoot parses input into a single value. Several documents are wrapped in
// an array.
func LoadRoot(input string) (value.Value, error) {
	return LoadRootWithLogger(input, logr.Discard())
}

// LoadRootWithLogger is LoadRoot with format decisions logged at V(1).
func LoadRootWithLogger(input string, log logr.Logger) (value.Value, error) {
	docs, err := LoadDataWithLogger(input, log)
	if err != nil {
		return value.Value{}, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return value.Array(docs...), nil
}

// LoadReader reads r to the end and parses it with LoadRoot.
func LoadReader(r io.Reader, log logr.Logger) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, fmt.Errorf("reading input: %w", err)
	}
	return LoadRootWithLogger(string(data), log)
}

// LoadFile reads path and parses it. A known extension picks the format;
// anything else goes through detection.
func LoadFile(path string, log logr.Logger) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	input := string(data)
	if strings.TrimSpace(input) == "" {
		return value.Value{}, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}

	var docs []value.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v, err := value.DecodeJSON(data)
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
		return v, nil
	case ".yaml", ".yml":
		docs, err = loadMultiDocYAML(input)
	case ".toml":
		docs, err = loadTOML(input)
	case ".ndjson", ".jsonl":
		docs, err = loadNDJSON(input)
	default:
		log.V(1).Info("no format for extension, detecting", "path", path)
		return LoadRootWithLogger(input, log)
	}
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return value.Array(docs...), nil
}

func loadYAML(input string) ([]value.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(input), &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	v, err := value.FromYAML(&node)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []value.Value{v}, nil
}

func loadMultiDocYAML(input string) ([]value.Value, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []value.Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		v, err := value.FromYAML(&node)
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if v.IsNull() {
			continue
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents found in YAML input")
	}
	return docs, nil
}

// loadNDJSON parses one JSON document per line. Lines that are not JSON are
// kept as plain strings.
func loadNDJSON(input string) ([]value.Value, error) {
	lines := strings.Split(input, "\n")
	docs := make([]value.Value, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := value.DecodeJSON([]byte(line))
		if err != nil {
			docs = append(docs, value.String(line))
			continue
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, errors.New("no data found in NDJSON input")
	}
	return docs, nil
}

// isLikelyNDJSON requires several non-empty lines, most of them starting like
// a JSON object or array. YAML lists ("- name") stay YAML.
func isLikelyNDJSON(lines []string) bool {
	jsonLines, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonLines++
		}
	}
	return nonEmpty > 1 && jsonLines > nonEmpty/2
}

// isLikelyTOML looks for section headers, or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (nonEmpty > 0 && pairs > nonEmpty/2)
}

// loadTOML decodes a TOML document. go-toml yields unordered maps, so keys come
// out sorted.
func loadTOML(input string) ([]value.Value, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []value.Value{value.FromAny(data)}, nil
}
