package ink

import (
	"fmt"
	"math"
)

// Aabb is an axis-aligned bounding box. Min is the top-left corner and Max the
// bottom-right one; constructors normalise so that Min <= Max component-wise.
type Aabb struct {
	Min, Max Point
}

// NewAabb creates a bounding box from two corners in any order.
func NewAabb(a, b Point) Aabb {
	return Aabb{Min: a.Min(b), Max: a.Max(b)}
}

// NewAabbFromPoints returns the smallest box containing all points.
// It returns the zero box for an empty argument list.
func NewAabbFromPoints(points ...Point) Aabb {
	if len(points) == 0 {
		return Aabb{}
	}
	b := Aabb{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.ExtendToPoint(p)
	}
	return b
}

// NewAabbFromSize creates a box from its top-left corner and a size.
func NewAabbFromSize(pos, size Point) Aabb {
	return NewAabb(pos, pos.Add(size))
}

// NewAabbFromHalfExtents creates a box centred on center.
func NewAabbFromHalfExtents(center, halfExtents Point) Aabb {
	return NewAabb(center.Sub(halfExtents), center.Add(halfExtents))
}

// Width returns the horizontal extent.
func (b Aabb) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Aabb) Height() float64 { return b.Max.Y - b.Min.Y }

// Size returns the extents as a vector.
func (b Aabb) Size() Point { return b.Max.Sub(b.Min) }

// Center returns the centre point.
func (b Aabb) Center() Point { return b.Min.Add(b.Max).Mul(0.5) }

// Translate returns the box moved by offset.
func (b Aabb) Translate(offset Point) Aabb {
	return Aabb{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Scale returns the box with both corners multiplied by s.
func (b Aabb) Scale(s float64) Aabb {
	return NewAabb(b.Min.Mul(s), b.Max.Mul(s))
}

// Merged returns the union of b and other.
func (b Aabb) Merged(other Aabb) Aabb {
	return Aabb{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// ExtendToPoint returns the box grown to contain p.
func (b Aabb) ExtendToPoint(p Point) Aabb {
	return Aabb{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExtendBy grows the box by amount in all four directions.
func (b Aabb) ExtendBy(amount Point) Aabb {
	return NewAabb(b.Min.Sub(amount), b.Max.Add(amount))
}

// ExtendRightAndBottomBy grows only the right and bottom edges.
func (b Aabb) ExtendRightAndBottomBy(amount Point) Aabb {
	return NewAabb(b.Min, b.Max.Add(amount))
}

// Loosened grows the box by margin on every side.
func (b Aabb) Loosened(margin float64) Aabb {
	return b.ExtendBy(Pt(margin, margin))
}

// Intersects reports whether the two boxes overlap, touching edges included.
func (b Aabb) Intersects(other Aabb) bool {
	return b.Min.X <= other.Max.X && other.Min.X <= b.Max.X &&
		b.Min.Y <= other.Max.Y && other.Min.Y <= b.Max.Y
}

// Intersection returns the overlapping region and whether it is non-empty.
func (b Aabb) Intersection(other Aabb) (Aabb, bool) {
	if !b.Intersects(other) {
		return Aabb{}, false
	}
	return Aabb{Min: b.Min.Max(other.Min), Max: b.Max.Min(other.Max)}, true
}

// Contains reports whether p lies inside the box or on its border.
func (b Aabb) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsAabb reports whether other lies completely inside b.
func (b Aabb) ContainsAabb(other Aabb) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Area returns the area of the box.
func (b Aabb) Area() float64 { return b.Width() * b.Height() }

// IsValid reports whether the box has finite, non-negative extents.
func (b Aabb) IsValid() bool {
	return b.Min.IsFinite() && b.Max.IsFinite() && b.Width() >= 0 && b.Height() >= 0
}

// Ceil returns the box with the min corner floored and the max corner ceiled.
func (b Aabb) Ceil() Aabb {
	return Aabb{
		Min: Pt(math.Floor(b.Min.X), math.Floor(b.Min.Y)),
		Max: Pt(math.Ceil(b.Max.X), math.Ceil(b.Max.Y)),
	}
}

func (b Aabb) String() string {
	return fmt.Sprintf("[(%g,%g)-(%g,%g)]", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}
