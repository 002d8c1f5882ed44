// Package selector picks the part of a value to show using a CEL expression
// in which "_" is bound to the whole value, for example
// `_.findings.filter(f, f.severity == "high")`.
package selector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// Selector is a compiled expression. It is safe for concurrent use.
type Selector struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and checks expr.
func Compile(expr string) (*Selector, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast, cel.InterruptCheckFrequency(100))
	if err != nil {
		return nil, fmt.Errorf("preparing %q: %w", expr, err)
	}
	return &Selector{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (s *Selector) String() string { return s.expr }

// Select evaluates the expression against v. Objects in the result that have
// the same keys as an object in v keep that object's key order; other objects
// get sorted keys.
func (s *Selector) Select(ctx context.Context, v value.Value) (value.Value, error) {
	out, _, err := s.prg.ContextEval(ctx, map[string]any{"_": value.ToAny(v)})
	if err != nil {
		return value.Value{}, fmt.Errorf("evaluating %q: %w", s.expr, err)
	}
	return toValue(out, indexKeyOrder(v), 0), nil
}

// Select compiles expr and applies it to v.
func Select(ctx context.Context, expr string, v value.Value) (value.Value, error) {
	s, err := Compile(expr)
	if err != nil {
		return value.Value{}, err
	}
	return s.Select(ctx, v)
}

// keyOrder maps a key-set signature to the encounter order of an object
// that has exactly those keys.
type keyOrder map[string][]string

func signature(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func indexKeyOrder(v value.Value) keyOrder {
	idx := keyOrder{}
	var walk func(value.Value)
	walk = func(v value.Value) {
		switch v.Kind() {
		case value.KindObject:
			keys := v.Object().Keys()
			sig := signature(keys)
			if _, seen := idx[sig]; !seen {
				idx[sig] = keys
			}
			for _, e := range v.Object().Entries() {
				walk(e.Value)
			}
		case value.KindArray:
			for _, item := range v.Items() {
				walk(item)
			}
		}
	}
	walk(v)
	return idx
}

const maxResultDepth = 10000

func toValue(val ref.Val, order keyOrder, depth int) value.Value {
	if depth > maxResultDepth {
		return value.Invalid(val)
	}
	switch v := val.(type) {
	case nil, types.Null:
		return value.Null()
	case types.Bool:
		return value.Bool(bool(v))
	case types.Int:
		return value.Int(int64(v))
	case types.Uint:
		return value.Number(strconv.FormatUint(uint64(v), 10))
	case types.Double:
		return value.Float(float64(v))
	case types.String:
		return value.String(string(v))
	case types.Bytes:
		return value.String(string(v))
	case traits.Mapper:
		return mapToValue(v, order, depth)
	case traits.Lister:
		var items []value.Value
		for it := v.Iterator(); it.HasNext() == types.True; {
			items = append(items, toValue(it.Next(), order, depth+1))
		}
		return value.Array(items...)
	default:
		return value.FromAny(val.Value())
	}
}

func mapToValue(m traits.Mapper, order keyOrder, depth int) value.Value {
	entries := map[string]ref.Val{}
	var keys []string
	for it := m.Iterator(); it.HasNext() == types.True; {
		k := it.Next()
		name := fmt.Sprint(k.Value())
		keys = append(keys, name)
		entries[name] = m.Get(k)
	}
	if known, ok := order[signature(keys)]; ok {
		keys = known
	} else {
		sort.Strings(keys)
	}
	obj := value.NewObject()
	for _, k := range keys {
		obj.Set(k, toValue(entries[k], order, depth+1))
	}
	return obj.Value()
}
