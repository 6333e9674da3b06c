package stroke

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/ink"
)

const (
	ellipseSegments   = 64
	circleSegments    = 12
	roughSubdivisions = 4
)

// Fill is one closed polygon filled with a single color (nonzero winding).
type Fill struct {
	Polygon []ink.Point
	Color   ink.Color
}

// TextRun is a line of text drawn with its baseline origin at Origin.
type TextRun struct {
	Origin   ink.Point
	Text     string
	FontSize float64
	Color    ink.Color
}

// Composition is the styled, fillable form of a stroke in document space.
type Composition struct {
	Fills []Fill
	Texts []TextRun
}

// IsEmpty reports whether the composition draws nothing.
func (c Composition) IsEmpty() bool {
	return len(c.Fills) == 0 && len(c.Texts) == 0
}

// Bounds returns the bounds of all polygons, or false for an empty
// composition. Text runs are not measured here; text strokes report their
// own bounds.
func (c Composition) Bounds() (ink.Aabb, bool) {
	var b ink.Aabb
	found := false
	for _, f := range c.Fills {
		if len(f.Polygon) == 0 {
			continue
		}
		pb := ink.NewAabbFromPoints(f.Polygon...)
		if !found {
			b, found = pb, true
			continue
		}
		b = b.Merged(pb)
	}
	return b, found
}

// strokePolyline outlines a polyline with per-vertex widths using segment
// quads and round joins.
func (c *Composition) strokePolyline(points []ink.Point, widths []float64, closed bool, color ink.Color) {
	n := len(points)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		c.dot(points[i], widths[i]/2, color)
	}
	segments := n - 1
	if closed && n > 2 {
		segments = n
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % n
		c.quad(points[i], points[j], widths[i]/2, widths[j]/2, color)
	}
}

func (c *Composition) quad(a, b ink.Point, ra, rb float64, color ink.Color) {
	dir := b.Sub(a)
	if dir.Length() == 0 {
		return
	}
	n := dir.Normalize().Perp()
	c.Fills = append(c.Fills, Fill{
		Polygon: []ink.Point{
			a.Add(n.Mul(ra)),
			b.Add(n.Mul(rb)),
			b.Sub(n.Mul(rb)),
			a.Sub(n.Mul(ra)),
		},
		Color: color,
	})
}

func (c *Composition) dot(center ink.Point, radius float64, color ink.Color) {
	if radius <= 0 {
		return
	}
	poly := make([]ink.Point, circleSegments)
	for i := range poly {
		angle := 2 * math.Pi * float64(i) / circleSegments
		poly[i] = center.Add(ink.Pt(math.Cos(angle), math.Sin(angle)).Mul(radius))
	}
	c.Fills = append(c.Fills, Fill{Polygon: poly, Color: color})
}

// subdivide splits every edge into n pieces.
func subdivide(points []ink.Point, n int, closed bool) []ink.Point {
	if len(points) < 2 || n < 2 {
		return points
	}
	edges := len(points) - 1
	if closed {
		edges = len(points)
	}
	out := make([]ink.Point, 0, edges*n+1)
	for i := 0; i < edges; i++ {
		a, b := points[i], points[(i+1)%len(points)]
		for k := 0; k < n; k++ {
			out = append(out, a.Lerp(b, float64(k)/float64(n)))
		}
	}
	if !closed {
		out = append(out, points[len(points)-1])
	}
	return out
}

// newRand returns a deterministic generator so a stroke composes the same
// way on every render.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
