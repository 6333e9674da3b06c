package ink

import "strconv"

// StrokeKey is an opaque handle identifying one stroke in the store.
// The zero key never identifies a stroke.
type StrokeKey uint64

// IsValid reports whether k may identify a stroke.
func (k StrokeKey) IsValid() bool { return k != 0 }

func (k StrokeKey) String() string { return "stroke#" + strconv.FormatUint(uint64(k), 10) }

// ContentSource is the read-only view of the stroke store the document needs
// to fit its bounds to the drawn content.
type ContentSource interface {
	// BoundsForAllStrokes returns the union of all live stroke bounds, or
	// false if there are none.
	BoundsForAllStrokes() (Aabb, bool)
	// CalcHeight returns the largest y coordinate covered by any live stroke,
	// or 0 for an empty store.
	CalcHeight() float64
}
