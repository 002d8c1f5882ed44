// Package limiter trims the top level of a value to a window of records
// before it is rendered or exported.
package limiter

import (
	"fmt"

	"github.com/oakwood-commons/assetview/pkg/value"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // keep at most this many records (0 = unlimited)
	Offset int // skip the first N records
	Tail   int // keep only the last N records; excludes Limit, ignores Offset
}

// Validate rejects negative values and Limit combined with Tail.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// window returns the [start, end) slice bounds for n records.
func (c Config) window(n int) (int, int) {
	if c.Tail > 0 {
		return max(n-c.Tail, 0), n
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply limits the items of an array or the entries of an object, in their
// original order. Other values are returned unchanged.
func (c Config) Apply(v value.Value) value.Value {
	if !c.IsActive() {
		return v
	}
	switch v.Kind() {
	case value.KindArray:
		items := v.Items()
		start, end := c.window(len(items))
		return value.Array(items[start:end]...)
	case value.KindObject:
		entries := v.Object().Entries()
		start, end := c.window(len(entries))
		out := value.NewObject()
		for _, e := range entries[start:end] {
			out.Set(e.Key, e.Value)
		}
		return out.Value()
	default:
		return v
	}
}
