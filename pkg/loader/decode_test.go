package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/assetview/pkg/value"
)

func TestTryDecodeString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "object", input: `{"score": 0.9, "findings": []}`, wantOK: true},
		{name: "array with padding", input: "  [1, 2]\n", wantOK: true},
		{name: "broken json", input: `{"score": 0.9`, wantOK: false},
		{name: "plain sentence", input: "The report is ready.", wantOK: false},
		{name: "yaml-looking text", input: "Note: not decoded", wantOK: false},
		{name: "bare number", input: "42", wantOK: false},
		{name: "quoted string", input: `"hello"`, wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := TryDecodeString(tt.input)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDecodeEmbedded(t *testing.T) {
	root, err := value.DecodeJSON([]byte(`{
		"title": "Audit",
		"detailed_results_json": "{\"b\": 1, \"a\": \"[1,2]\"}",
		"broken_json": "{not json",
		"list": ["{\"x\": true}", "plain"]
	}`))
	require.NoError(t, err)

	got := DecodeEmbedded(root)
	assert.Equal(t, []string{"title", "detailed_results_json", "broken_json", "list"}, got.Object().Keys())

	details, _ := got.Get("detailed_results_json")
	require.Equal(t, value.KindObject, details.Kind())
	assert.Equal(t, []string{"b", "a"}, details.Object().Keys())
	inner, _ := details.Get("a")
	assert.Equal(t, value.KindArray, inner.Kind(), "doubly encoded payloads unwrap")

	broken, _ := got.Get("broken_json")
	assert.Equal(t, value.String("{not json"), broken)

	list, _ := got.Get("list")
	first, _ := list.Index(0)
	second, _ := list.Index(1)
	assert.Equal(t, value.KindObject, first.Kind())
	assert.Equal(t, value.String("plain"), second)

	// the input is untouched
	orig, _ := root.Get("detailed_results_json")
	assert.Equal(t, value.KindString, orig.Kind())
}

func TestDecodeEmbeddedStopsAtDepthLimit(t *testing.T) {
	s := `"leaf"`
	for i := 0; i < 14; i++ {
		enc, err := value.Encode(value.String("["+s+"]"), "")
		require.NoError(t, err)
		s = string(enc)
	}
	v, err := value.DecodeJSON([]byte(s))
	require.NoError(t, err)
	assert.NotPanics(t, func() { DecodeEmbedded(v) })
	assert.True(t, strings.Contains(DecodeEmbedded(v).String(), "leaf"))
}
