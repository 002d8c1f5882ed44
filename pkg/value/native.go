package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// FromAny converts native Go data into a Value. Maps get sorted keys since Go
// maps carry no order; structs go through encoding/json so their field order
// and tags are honoured. Anything without a JSON form becomes Invalid rather
// than an error.
func FromAny(x any) Value {
	return fromAny(x, 0)
}

func fromAny(x any, depth int) Value {
	if depth > maxNesting {
		return Invalid(x)
	}
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Object:
		return FromObject(t)
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return Number(t.String())
	case float64:
		return Float(t)
	case float32:
		return Float(float64(t))
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case int32:
		return Int(int64(t))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromAny(item, depth+1)
		}
		return Value{kind: KindArray, items: items}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, fromAny(t[k], depth+1))
		}
		return FromObject(obj)
	}
	return fromReflect(x, depth)
}

func fromReflect(x any, depth int) Value {
	rv := reflect.ValueOf(x)
	//exhaustive:ignore // only container and numeric kinds need handling here
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return fromAny(rv.Elem().Interface(), depth+1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = fromAny(rv.Index(i).Interface(), depth+1)
		}
		return Value{kind: KindArray, items: items}
	case reflect.Map:
		if rv.IsNil() {
			return Null()
		}
		type kv struct {
			key string
			val reflect.Value
		}
		pairs := make([]kv, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, kv{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value()})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		obj := NewObject()
		for _, p := range pairs {
			obj.Set(p.key, fromAny(p.val.Interface(), depth+1))
		}
		return FromObject(obj)
	case reflect.Struct:
		data, err := json.Marshal(x)
		if err != nil {
			return Invalid(x)
		}
		v, err := DecodeJSON(data)
		if err != nil {
			return Invalid(x)
		}
		return v
	default:
		return Invalid(x)
	}
}

// ToAny converts v into plain Go data (nil, bool, int64/float64, string,
// []any, map[string]any). Key order is lost.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return f
		}
		return math.NaN()
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToAny(item)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, e := range v.obj.Entries() {
			out[e.Key] = ToAny(e.Value)
		}
		return out
	default:
		return v.raw
	}
}
