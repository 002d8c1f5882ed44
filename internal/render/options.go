package render

import "fmt"

// Defaults used when an Options field is left at zero.
const (
	DefaultMaxDepth            = 3
	DefaultMaxArrayItemsShown  = 5
	DefaultLongStringThreshold = 100
	DefaultURLDisplayThreshold = 50
)

// Options bounds how much of a value gets rendered. Zero fields take the
// defaults above.
type Options struct {
	// MaxDepth is the deepest level rendered in full. Containers below it
	// become placeholders.
	MaxDepth int `json:"maxDepth" yaml:"max_depth"`
	// MaxArrayItemsShown caps the items shown for arrays of objects.
	MaxArrayItemsShown int `json:"maxArrayItemsShown" yaml:"max_array_items_shown"`
	// MaxPrimitiveItemsShown caps chips in a primitive array. 0 shows all.
	MaxPrimitiveItemsShown int `json:"maxPrimitiveItemsShown" yaml:"max_primitive_items_shown"`
	// LongStringThreshold is the rune count above which a string is long.
	LongStringThreshold int `json:"longStringThreshold" yaml:"long_string_threshold"`
	// LongStringPreview is the number of runes kept from a long string.
	// 0 uses LongStringThreshold.
	LongStringPreview int `json:"longStringPreview" yaml:"long_string_preview"`
	// URLDisplayThreshold is the longest URL label shown untruncated.
	URLDisplayThreshold int `json:"urlDisplayThreshold" yaml:"url_display_threshold"`
}

// DefaultOptions returns the standard bounds.
func DefaultOptions() Options {
	return Options{
		MaxDepth:            DefaultMaxDepth,
		MaxArrayItemsShown:  DefaultMaxArrayItemsShown,
		LongStringThreshold: DefaultLongStringThreshold,
		URLDisplayThreshold: DefaultURLDisplayThreshold,
	}
}

// Validate rejects negative bounds.
func (o Options) Validate() error {
	fields := []struct {
		name string
		val  int
	}{
		{"max depth", o.MaxDepth},
		{"max array items shown", o.MaxArrayItemsShown},
		{"max primitive items shown", o.MaxPrimitiveItemsShown},
		{"long string threshold", o.LongStringThreshold},
		{"long string preview", o.LongStringPreview},
		{"url display threshold", o.URLDisplayThreshold},
	}
	for _, f := range fields {
		if f.val < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", f.name, f.val)
		}
	}
	return nil
}

// ValidateExplicit is Validate for options spelled out by a user, such as
// flags or a config file. Bounds whose zero value would fall back to a
// default must be at least 1 there, so a requested 0 is never silently
// replaced.
func (o Options) ValidateExplicit() error {
	if err := o.Validate(); err != nil {
		return err
	}
	fields := []struct {
		name string
		val  int
	}{
		{"max depth", o.MaxDepth},
		{"max array items shown", o.MaxArrayItemsShown},
		{"long string threshold", o.LongStringThreshold},
		{"url display threshold", o.URLDisplayThreshold},
	}
	for _, f := range fields {
		if f.val < 1 {
			return fmt.Errorf("%s must be >= 1, got %d", f.name, f.val)
		}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxArrayItemsShown <= 0 {
		o.MaxArrayItemsShown = DefaultMaxArrayItemsShown
	}
	if o.MaxPrimitiveItemsShown < 0 {
		o.MaxPrimitiveItemsShown = 0
	}
	if o.LongStringThreshold <= 0 {
		o.LongStringThreshold = DefaultLongStringThreshold
	}
	if o.LongStringPreview <= 0 {
		o.LongStringPreview = o.LongStringThreshold
	}
	if o.URLDisplayThreshold <= 0 {
		o.URLDisplayThreshold = DefaultURLDisplayThreshold
	}
	return o
}
