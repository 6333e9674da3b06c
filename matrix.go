package ink

import "math"

// Matrix is the affine transform between document and surface coordinates:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Camera transforms only translate and scale uniformly, so B and D stay zero
// for every matrix the engine builds. The general form keeps composition
// simple.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity maps every point to itself.
func Identity() Matrix { return Matrix{A: 1, E: 1} }

// Translate moves points by (x, y).
func Translate(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

// Scale scales points about the origin.
func Scale(x, y float64) Matrix { return Matrix{A: x, E: y} }

// Multiply returns m ∘ n: the result applies n first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// TransformPoint maps p.
func (m Matrix) TransformPoint(p Point) Point {
	return Pt(m.A*p.X+m.B*p.Y+m.C, m.D*p.X+m.E*p.Y+m.F)
}

// TransformAabb maps the four corners of b and returns their bounds.
func (m Matrix) TransformAabb(b Aabb) Aabb {
	return NewAabbFromPoints(
		m.TransformPoint(b.Min),
		m.TransformPoint(b.Max),
		m.TransformPoint(Pt(b.Min.X, b.Max.Y)),
		m.TransformPoint(Pt(b.Max.X, b.Min.Y)),
	)
}

// Invert returns the inverse of m. A degenerate matrix, such as the transform
// of a zero zoom, inverts to the identity.
func (m Matrix) Invert() Matrix {
	det := m.determinant()
	if math.Abs(det) < 1e-10 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity()
	}
	return Matrix{
		A: m.E / det,
		B: -m.B / det,
		C: (m.B*m.F - m.C*m.E) / det,
		D: -m.D / det,
		E: m.A / det,
		F: (m.C*m.D - m.A*m.F) / det,
	}
}

// ScaleFactor is the uniform zoom of m, the scale a stroke width is drawn at.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.determinant()))
}

func (m Matrix) determinant() float64 { return m.A*m.E - m.B*m.D }
