// Package value models the JSON-compatible values assetview renders and
// exports. Objects keep their keys in encounter order so a rendered view lists
// properties the way the producing agent wrote them.
package value

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	// KindNull is the zero Kind so the zero Value reads as null.
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	// KindInvalid holds something that is not JSON-compatible.
	KindInvalid
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object", "invalid"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Value is an immutable JSON value. Build it with the constructors in this
// package or with one of the decoders.
type Value struct {
	kind  Kind
	b     bool
	s     string // string payload or number literal
	items []Value
	obj   *Object
	raw   any // original input for KindInvalid
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a number holding the literal text, kept verbatim for display
// and encoding.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Float returns a number formatted with the shortest representation that
// round-trips. NaN and infinities keep their textual form and fail to encode.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// Int returns an integer number.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Array returns an array of the given items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// FromObject wraps an object. A nil object becomes an empty one.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Invalid wraps a Go value that has no JSON representation.
func Invalid(raw any) Value { return Value{kind: KindInvalid, raw: raw} }

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Str returns the string payload for strings and the literal for numbers.
func (v Value) Str() string {
	if v.kind == KindString || v.kind == KindNumber {
		return v.s
	}
	return ""
}

// Float64 parses a number value.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Items returns a copy of the array items; nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Index returns the i-th array item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Len is the number of array items or object keys.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Object returns the object payload; nil for other kinds.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get looks up key on an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Raw returns the original Go value behind an invalid Value.
func (v Value) Raw() any { return v.raw }

// String renders v as compact JSON, or a marker when it cannot be encoded.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return string(b)
}

// MarshalJSON encodes v as compact, key-ordered JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return Encode(v, "")
}

// UnmarshalJSON decodes a JSON document into v, keeping key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Equal reports deep equality. Numbers compare by numeric value when both
// parse, object key order is ignored.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNumber:
		if a.s == b.s {
			return true
		}
		fa, okA := a.Float64()
		fb, okB := b.Float64()
		return okA && okB && fa == fb
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, k := range a.obj.keys {
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(a.obj.vals[k], bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// compile-time checks
var (
	_ json.Marshaler   = Value{}
	_ json.Unmarshaler = (*Value)(nil)
)
