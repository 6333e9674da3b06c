package stroke

import (
	"errors"
	"fmt"

	"github.com/gogpu/ink"
)

// ErrStyleUnsupported is returned when a style cannot compose a shape, for
// example a rough style applied to a pen path.
var ErrStyleUnsupported = errors.New("stroke: style unsupported for this shape")

// Styler is the capability every style variant implements.
type Styler interface {
	// StrokeWidth is the nominal width of the outline.
	StrokeWidth() float64
	// BoundsMargin is how far the composed outline may reach beyond the
	// shape's geometric bounds.
	BoundsMargin() float64
	// Compose turns the shape into fillable outlines.
	Compose(shape Shape) (Composition, error)
	// Supports reports whether Compose can handle the shape.
	Supports(shape Shape) bool
}

// Style is the closed set of stroke styles: Smooth, Rough and Textured.
type Style interface {
	Styler
	// Name returns the style tag used in configs.
	Name() string
	style()
}

// Smooth draws a clean outline whose width optionally follows pen pressure.
type Smooth struct {
	Width             float64   `toml:"width"`
	Color             ink.Color `toml:"color"`
	PressureSensitive bool      `toml:"pressure_sensitive"`
}

// Rough draws a sketchy, hand-drawn looking outline. It is meant for shapes
// and does not support pen paths.
type Rough struct {
	Width     float64   `toml:"width"`
	Color     ink.Color `toml:"color"`
	Roughness float64   `toml:"roughness"`
	Seed      uint64    `toml:"seed"`
}

// Textured stipples dots along a pen path. It does not support closed shapes.
type Textured struct {
	Width   float64   `toml:"width"`
	Color   ink.Color `toml:"color"`
	Density float64   `toml:"density"`
	Seed    uint64    `toml:"seed"`
}

func (Smooth) style()   {}
func (Rough) style()    {}
func (Textured) style() {}

func (Smooth) Name() string   { return "smooth" }
func (Rough) Name() string    { return "rough" }
func (Textured) Name() string { return "textured" }

func (s Smooth) StrokeWidth() float64   { return s.Width }
func (s Rough) StrokeWidth() float64    { return s.Width }
func (s Textured) StrokeWidth() float64 { return s.Width }

func (s Smooth) BoundsMargin() float64 { return s.Width / 2 }

// The rough outline is displaced by up to roughness*width on top of the
// regular half width.
func (s Rough) BoundsMargin() float64 { return s.Width/2 + s.Roughness*s.Width + 1 }

// Dots are scattered within the stroke width.
func (s Textured) BoundsMargin() float64 { return s.Width }

// Supports reports true for every shape.
func (Smooth) Supports(Shape) bool { return true }

// Supports reports false for pen paths.
func (Rough) Supports(shape Shape) bool {
	_, isPath := shape.(PenPath)
	return !isPath
}

// Supports reports true for pen paths and lines.
func (Textured) Supports(shape Shape) bool {
	switch shape.(type) {
	case PenPath, Line:
		return true
	}
	return false
}

// Compose implements Styler.
func (s Smooth) Compose(shape Shape) (Composition, error) {
	var comp Composition
	switch sh := shape.(type) {
	case PenPath:
		points, widths := sh.points(s.Width, s.PressureSensitive)
		comp.strokePolyline(points, widths, false, s.Color)
	case Line:
		comp.strokePolyline([]ink.Point{sh.Start, sh.End}, uniform(s.Width, 2), false, s.Color)
	case Rectangle:
		points := sh.outline()
		comp.strokePolyline(points, uniform(s.Width, len(points)), true, s.Color)
	case Ellipse:
		points := sh.outline(ellipseSegments)
		comp.strokePolyline(points, uniform(s.Width, len(points)), true, s.Color)
	default:
		return Composition{}, fmt.Errorf("%w: smooth %T", ErrStyleUnsupported, shape)
	}
	return comp, nil
}

// Compose implements Styler.
func (s Rough) Compose(shape Shape) (Composition, error) {
	var outline []ink.Point
	closed := true
	switch sh := shape.(type) {
	case Line:
		outline = subdivide([]ink.Point{sh.Start, sh.End}, roughSubdivisions, false)
		closed = false
	case Rectangle:
		outline = subdivide(sh.outline(), roughSubdivisions, true)
	case Ellipse:
		outline = sh.outline(ellipseSegments)
	default:
		return Composition{}, fmt.Errorf("%w: rough %T", ErrStyleUnsupported, shape)
	}

	rng := newRand(s.Seed)
	amplitude := s.Roughness * s.Width
	var comp Composition
	// Two jittered passes give the sketchy double line.
	for pass := 0; pass < 2; pass++ {
		jittered := make([]ink.Point, len(outline))
		for i, p := range outline {
			jittered[i] = p.Add(ink.Pt(
				(rng.Float64()*2-1)*amplitude,
				(rng.Float64()*2-1)*amplitude,
			))
		}
		comp.strokePolyline(jittered, uniform(s.Width, len(jittered)), closed, s.Color)
	}
	return comp, nil
}

// Compose implements Styler.
func (s Textured) Compose(shape Shape) (Composition, error) {
	var points []ink.Point
	var widths []float64
	switch sh := shape.(type) {
	case PenPath:
		points, widths = sh.points(s.Width, true)
	case Line:
		points, widths = []ink.Point{sh.Start, sh.End}, uniform(s.Width, 2)
	default:
		return Composition{}, fmt.Errorf("%w: textured %T", ErrStyleUnsupported, shape)
	}

	density := s.Density
	if density <= 0 {
		density = 1
	}
	rng := newRand(s.Seed)
	var comp Composition
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		w := (widths[i-1] + widths[i]) / 2
		length := a.Distance(b)
		dots := int(length*density/2) + 1
		for d := 0; d < dots; d++ {
			center := a.Lerp(b, rng.Float64())
			normal := b.Sub(a).Normalize().Perp()
			center = center.Add(normal.Mul((rng.Float64() - 0.5) * w))
			comp.dot(center, w*0.15+0.3, s.Color)
		}
	}
	return comp, nil
}

func uniform(width float64, n int) []float64 {
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = width
	}
	return widths
}
