package render

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// Category is the display classification of a value.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNull
	CategoryBoolean
	CategoryNumber
	CategoryShortString
	CategoryLongString
	CategoryURLString
	CategoryEmptyArray
	CategoryPrimitiveArray
	CategoryObjectArray
	CategoryEmptyObject
	CategoryObject
)

var categoryNames = map[Category]string{
	CategoryUnknown:        "unknown",
	CategoryNull:           "null",
	CategoryBoolean:        "boolean",
	CategoryNumber:         "number",
	CategoryShortString:    "string",
	CategoryLongString:     "long-string",
	CategoryURLString:      "url-string",
	CategoryEmptyArray:     "empty-array",
	CategoryPrimitiveArray: "array-of-primitives",
	CategoryObjectArray:    "array-of-objects",
	CategoryEmptyObject:    "empty-object",
	CategoryObject:         "object",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsSimple reports whether c renders as a single row in an object's key/value
// grid. Unknown values count as simple.
func (c Category) IsSimple() bool {
	return !c.IsArray() && !c.IsObject()
}

// IsArray reports whether c is one of the array categories.
func (c Category) IsArray() bool {
	return c == CategoryEmptyArray || c == CategoryPrimitiveArray || c == CategoryObjectArray
}

// IsObject reports whether c is one of the object categories.
func (c Category) IsObject() bool {
	return c == CategoryEmptyObject || c == CategoryObject
}

// Classify returns the display category of v. The first matching rule wins:
// null, boolean, number, string (URL prefix before length), array, object.
func Classify(v value.Value, opts Options) Category {
	opts = opts.withDefaults()
	switch v.Kind() {
	case value.KindNull:
		return CategoryNull
	case value.KindBool:
		return CategoryBoolean
	case value.KindNumber:
		return CategoryNumber
	case value.KindString:
		s := v.Str()
		switch {
		case strings.HasPrefix(s, "http"):
			return CategoryURLString
		case utf8.RuneCountInString(s) > opts.LongStringThreshold:
			return CategoryLongString
		default:
			return CategoryShortString
		}
	case value.KindArray:
		if v.Len() == 0 {
			return CategoryEmptyArray
		}
		if lo.EveryBy(v.Items(), isPrimitive) {
			return CategoryPrimitiveArray
		}
		return CategoryObjectArray
	case value.KindObject:
		if v.Len() == 0 {
			return CategoryEmptyObject
		}
		return CategoryObject
	default:
		return CategoryUnknown
	}
}

func isPrimitive(v value.Value) bool {
	switch v.Kind() {
	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
		return true
	default:
		return false
	}
}
