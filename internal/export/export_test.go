package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/assetview/internal/render"
	"github.com/oakwood-commons/assetview/pkg/logger"
	"github.com/oakwood-commons/assetview/pkg/value"
)

func mustJSON(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestToJSONRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name": "Acme", "score": 0.83, "tags": ["x", "y"]}`,
		`[{"a": {"b": [1, 2.5e10, -0.001]}}, [], {}, null, true]`,
		`{"unicode": "Grüße, 世界 🚀", "quote": "she said \"hi\"\n"}`,
		`"just a string"`,
		`12.50`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v := mustJSON(t, in)
			out, err := ToJSON(v)
			require.NoError(t, err)
			back := mustJSON(t, out)
			assert.True(t, value.Equal(v, back), "round trip changed the value:\n%s", out)
		})
	}
}

func TestToJSONIndentsTwoSpaces(t *testing.T) {
	out, err := ToJSON(mustJSON(t, `{"b": {"c": 1}, "a": 2}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": {\n    \"c\": 1\n  },\n  \"a\": 2\n}", out)
}

func TestToJSONRejectsInvalid(t *testing.T) {
	_, err := ToJSON(value.Array(value.Invalid(make(chan int))))
	assert.ErrorIs(t, err, value.ErrNotEncodable)
}

func TestToCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "array of objects uses first element keys",
			in:   `[{"id": 1, "name": "a, b", "tags": ["x"]}, {"name": "c", "id": 2, "extra": true}, {"id": 3}]`,
			want: "id,name,tags\n1,\"a, b\",\"[\"\"x\"\"]\"\n2,c,\n3,,\n",
		},
		{
			name: "non-object rows go to the first column",
			in:   `[{"a": 1, "b": 2}, "loose", [1, 2]]`,
			want: "a,b\n1,2\n\"\"\"loose\"\"\",\n\"[1,2]\",\n",
		},
		{
			name: "single object",
			in:   `{"name": "Acme", "score": 0.83, "meta": {"k": null}}`,
			want: "key,value\nname,\"\"\"Acme\"\"\"\nscore,0.83\nmeta,\"{\"\"k\"\":null}\"\n",
		},
		{
			name: "primitive array",
			in:   `["x", 2, null, "line\nbreak"]`,
			want: "value\nx\n2\nnull\n\"line\nbreak\"\n",
		},
		{
			name: "scalar",
			in:   `"solo"`,
			want: "value\nsolo\n",
		},
		{
			name: "empty array",
			in:   `[]`,
			want: "",
		},
		{
			name: "empty object",
			in:   `{}`,
			want: "key,value\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCSV(mustJSON(t, tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPlainText(t *testing.T) {
	v := mustJSON(t, `{"a": [1, 2]}`)
	plain, err := ToPlainText(v, nil)
	require.NoError(t, err)
	asJSON, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, asJSON, plain)

	text, err := ToPlainText(v, TextFormatter(render.New(render.Options{})))
	require.NoError(t, err)
	assert.Equal(t, "A:\n  [1] [2]\n", text)
}

func TestToYAMLAndTOML(t *testing.T) {
	v := mustJSON(t, `{"title": "Q3", "stats": {"count": 3, "ratio": 0.5}}`)

	y, err := ToYAML(v)
	require.NoError(t, err)
	assert.Equal(t, "title: Q3\nstats:\n  count: 3\n  ratio: 0.5\n", y)

	tm, err := ToTOML(v)
	require.NoError(t, err)
	assert.Contains(t, tm, "title = 'Q3'")
	assert.Contains(t, tm, "[stats]")
	assert.Contains(t, tm, "count = 3")

	_, err = ToTOML(mustJSON(t, `[1, 2]`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToTOMLRejectsNull(t *testing.T) {
	tests := map[string]string{
		`{"a": null, "b": 1}`:               "at a",
		`{"s": {"ok": 1, "gone": null}}`:    "at s.gone",
		`{"list": [{"x": 1}, {"x": null}]}`: "at list[1].x",
	}
	for in, where := range tests {
		_, err := ToTOML(mustJSON(t, in))
		require.ErrorIs(t, err, ErrUnsupportedFormat, in)
		assert.ErrorContains(t, err, where, in)
	}
}

func TestRenderedFormats(t *testing.T) {
	v := mustJSON(t, `{"site": "https://example.com"}`)
	md := ToMarkdown(v, render.New(render.Options{}), "Asset")
	assert.Contains(t, md, "# Asset")
	assert.Contains(t, md, "[https://example.com](https://example.com)")

	page := ToHTML(v, render.New(render.Options{}), "Asset")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `href="https://example.com"`)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json": FormatJSON, "CSV": FormatCSV, "text": FormatText, "txt": FormatText,
		"yml": FormatYAML, "toml": FormatTOML, "markdown": FormatMarkdown, " html ": FormatHTML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Render(value.Null(), Format("xlsx"), nil, "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "Market_Report_1700000000123.csv", Filename("Market Report", FormatCSV, now))
	assert.Equal(t, "a_b_1700000000123.json", Filename("../a/b", FormatJSON, now))
	assert.Equal(t, "asset_1700000000123.md", Filename("  ", FormatMarkdown, now))
}

func TestExporterNeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	fixed := time.UnixMilli(1700000000000)
	e := &Exporter{Dir: dir, Clock: func() time.Time { return fixed }}
	v := mustJSON(t, `{"n": 1}`)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := e.Write(context.Background(), "report", v, FormatJSON)
		require.NoError(t, err)
		assert.False(t, seen[p], "path reused: %s", p)
		seen[p] = true
	}
	assert.True(t, seen[filepath.Join(dir, "report_1700000000000.json")])
	assert.True(t, seen[filepath.Join(dir, "report_1700000000001.json")])
	assert.True(t, seen[filepath.Join(dir, "report_1700000000002.json")])

	data, err := os.ReadFile(filepath.Join(dir, "report_1700000000000.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"n\": 1\n}\n", string(data))
}

func TestExporterHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Exporter{Dir: t.TempDir()}
	_, err := e.Write(ctx, "x", value.Null(), FormatJSON)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExporterSurfacesFormatErrors(t *testing.T) {
	e := &Exporter{Dir: t.TempDir()}
	_, err := e.Write(context.Background(), "x", mustJSON(t, `[1]`), FormatTOML)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type failingFile struct {
	io.WriteCloser
}

func (failingFile) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExporterRemovesPartialFile(t *testing.T) {
	orig := openExportFile
	t.Cleanup(func() { openExportFile = orig })
	openExportFile = func(path string) (io.WriteCloser, error) {
		f, err := orig(path)
		if err != nil {
			return nil, err
		}
		return failingFile{WriteCloser: f}, nil
	}

	dir := t.TempDir()
	e := &Exporter{Dir: dir, Clock: func() time.Time { return time.UnixMilli(1700000000000) }}
	_, err := e.Write(context.Background(), "report", mustJSON(t, `{"n": 1}`), FormatJSON)
	require.ErrorContains(t, err, "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporterLogsAssetAndFormat(t *testing.T) {
	var buf bytes.Buffer
	lgr, zl := logger.New(-1, &buf)
	e := &Exporter{Dir: t.TempDir(), Log: lgr}
	_, err := e.Write(context.Background(), "report", mustJSON(t, `{"n": 1}`), FormatCSV)
	require.NoError(t, err)
	require.NoError(t, zl.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "wrote export", entry[logger.MessageKey])
	assert.Equal(t, "report", entry[logger.AssetKey])
	assert.Equal(t, "csv", entry[logger.FormatKey])
}
