package loader

import (
	"strings"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// maxEmbeddedDepth bounds how far DecodeEmbedded descends.
const maxEmbeddedDepth = 20

// TryDecodeString parses a string that is expected to carry a JSON object or
// array, such as a detailed_results_json field. It reports false for anything
// else, in which case the caller should show the raw string.
func TryDecodeString(s string) (value.Value, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return value.Value{}, false
	}
	v, err := value.DecodeJSON([]byte(trimmed))
	if err != nil {
		return value.Value{}, false
	}
	if k := v.Kind(); k != value.KindObject && k != value.KindArray {
		return value.Value{}, false
	}
	return v, true
}

// DecodeEmbedded returns a copy of v where every string holding a JSON object
// or array is replaced by its parsed form. Decoded strings are searched again,
// so doubly encoded payloads unwrap too.
func DecodeEmbedded(v value.Value) value.Value {
	return decodeEmbedded(v, 0)
}

func decodeEmbedded(v value.Value, depth int) value.Value {
	if depth > maxEmbeddedDepth {
		return v
	}
	switch v.Kind() {
	case value.KindString:
		if decoded, ok := TryDecodeString(v.Str()); ok {
			return decodeEmbedded(decoded, depth+1)
		}
		return v
	case value.KindArray:
		items := v.Items()
		for i, item := range items {
			items[i] = decodeEmbedded(item, depth+1)
		}
		return value.Array(items...)
	case value.KindObject:
		out := value.NewObject()
		for _, e := range v.Object().Entries() {
			out.Set(e.Key, decodeEmbedded(e.Value, depth+1))
		}
		return out.Value()
	default:
		return v
	}
}
