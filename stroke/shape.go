package stroke

import (
	"fmt"
	"math"

	"github.com/gogpu/ink"
)

// Shape is the closed set of stroke geometries: PenPath, Line, Rectangle and
// Ellipse. Shapes are values; Translated returns a moved copy.
type Shape interface {
	Bounds() ink.Aabb
	// HitBoxes returns coarse boxes covering the geometry, loosened by margin.
	HitBoxes(margin float64) []ink.Aabb
	Translated(offset ink.Point) Shape
	shape()
}

// PenPath is a freehand path of pointer elements.
type PenPath struct {
	Elements []ink.Element
}

// Line is a straight segment.
type Line struct {
	Start, End ink.Point
}

// Rectangle is an axis-aligned rectangle outline.
type Rectangle struct {
	Rect ink.Aabb
}

// Ellipse is an axis-aligned ellipse outline.
type Ellipse struct {
	Center ink.Point
	Radii  ink.Point
}

func (PenPath) shape()   {}
func (Line) shape()      {}
func (Rectangle) shape() {}
func (Ellipse) shape()   {}

// Bounds implements Shape.
func (p PenPath) Bounds() ink.Aabb {
	if len(p.Elements) == 0 {
		return ink.Aabb{}
	}
	b := ink.Aabb{Min: p.Elements[0].Pos, Max: p.Elements[0].Pos}
	for _, el := range p.Elements[1:] {
		b = b.ExtendToPoint(el.Pos)
	}
	return b
}

// HitBoxes returns one box per segment.
func (p PenPath) HitBoxes(margin float64) []ink.Aabb {
	switch len(p.Elements) {
	case 0:
		return nil
	case 1:
		return []ink.Aabb{ink.NewAabbFromPoints(p.Elements[0].Pos).Loosened(margin)}
	}
	boxes := make([]ink.Aabb, 0, len(p.Elements)-1)
	for i := 1; i < len(p.Elements); i++ {
		boxes = append(boxes, ink.NewAabb(p.Elements[i-1].Pos, p.Elements[i].Pos).Loosened(margin))
	}
	return boxes
}

// Translated implements Shape.
func (p PenPath) Translated(offset ink.Point) Shape {
	out := PenPath{Elements: make([]ink.Element, len(p.Elements))}
	for i, el := range p.Elements {
		el.Pos = el.Pos.Add(offset)
		out.Elements[i] = el
	}
	return out
}

// points returns positions and per-element widths.
func (p PenPath) points(width float64, pressureSensitive bool) ([]ink.Point, []float64) {
	points := make([]ink.Point, len(p.Elements))
	widths := make([]float64, len(p.Elements))
	for i, el := range p.Elements {
		points[i] = el.Pos
		if pressureSensitive {
			// full width at pressure 0.5, never thinner than a fifth
			widths[i] = width * math.Max(el.Pressure*2, 0.2)
		} else {
			widths[i] = width
		}
	}
	return points, widths
}

// Bounds implements Shape.
func (l Line) Bounds() ink.Aabb { return ink.NewAabb(l.Start, l.End) }

// HitBoxes splits the line into pieces so diagonal lines do not cover a
// large empty box.
func (l Line) HitBoxes(margin float64) []ink.Aabb {
	pieces := int(math.Max(math.Ceil(l.Start.Distance(l.End)/32), 1))
	boxes := make([]ink.Aabb, pieces)
	for i := range boxes {
		a := l.Start.Lerp(l.End, float64(i)/float64(pieces))
		b := l.Start.Lerp(l.End, float64(i+1)/float64(pieces))
		boxes[i] = ink.NewAabb(a, b).Loosened(margin)
	}
	return boxes
}

// Translated implements Shape.
func (l Line) Translated(offset ink.Point) Shape {
	return Line{Start: l.Start.Add(offset), End: l.End.Add(offset)}
}

// NewRectangle creates a rectangle from two corners.
func NewRectangle(a, b ink.Point) Rectangle {
	return Rectangle{Rect: ink.NewAabb(a, b)}
}

// Bounds implements Shape.
func (r Rectangle) Bounds() ink.Aabb { return r.Rect }

// HitBoxes returns one box per edge.
func (r Rectangle) HitBoxes(margin float64) []ink.Aabb {
	pts := r.outline()
	boxes := make([]ink.Aabb, len(pts))
	for i := range pts {
		boxes[i] = ink.NewAabb(pts[i], pts[(i+1)%len(pts)]).Loosened(margin)
	}
	return boxes
}

// Translated implements Shape.
func (r Rectangle) Translated(offset ink.Point) Shape {
	return Rectangle{Rect: r.Rect.Translate(offset)}
}

func (r Rectangle) outline() []ink.Point {
	b := r.Rect
	return []ink.Point{b.Min, ink.Pt(b.Max.X, b.Min.Y), b.Max, ink.Pt(b.Min.X, b.Max.Y)}
}

// NewEllipseFromCorners creates the ellipse inscribed in the box spanned by
// two corners.
func NewEllipseFromCorners(a, b ink.Point) Ellipse {
	box := ink.NewAabb(a, b)
	return Ellipse{Center: box.Center(), Radii: box.Size().Mul(0.5)}
}

// Bounds implements Shape.
func (e Ellipse) Bounds() ink.Aabb {
	return ink.NewAabbFromHalfExtents(e.Center, e.Radii)
}

// HitBoxes returns boxes along the outline.
func (e Ellipse) HitBoxes(margin float64) []ink.Aabb {
	pts := e.outline(16)
	boxes := make([]ink.Aabb, len(pts))
	for i := range pts {
		boxes[i] = ink.NewAabb(pts[i], pts[(i+1)%len(pts)]).Loosened(margin)
	}
	return boxes
}

// Translated implements Shape.
func (e Ellipse) Translated(offset ink.Point) Shape {
	return Ellipse{Center: e.Center.Add(offset), Radii: e.Radii}
}

func (e Ellipse) outline(segments int) []ink.Point {
	pts := make([]ink.Point, segments)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = e.Center.Add(ink.Pt(math.Cos(angle)*e.Radii.X, math.Sin(angle)*e.Radii.Y))
	}
	return pts
}

// ShapeKind selects the shape a shaper builds.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeRectangle
	ShapeEllipse
)

var shapeKindNames = [...]string{"line", "rectangle", "ellipse"}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeKindNames) {
		return "unknown"
	}
	return shapeKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(text []byte) error {
	for i, name := range shapeKindNames {
		if name == string(text) {
			*k = ShapeKind(i)
			return nil
		}
	}
	return fmt.Errorf("stroke: unknown shape kind %q", text)
}

// BuildShape creates the shape of the given kind spanned by two points.
func BuildShape(kind ShapeKind, start, current ink.Point) Shape {
	switch kind {
	case ShapeRectangle:
		return NewRectangle(start, current)
	case ShapeEllipse:
		return NewEllipseFromCorners(start, current)
	default:
		return Line{Start: start, End: current}
	}
}
