package ink

import (
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// Multiply applies the right operand first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if want := Pt(12, 2); got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(-3, 7)},
		{"scale", Scale(2, 0.5)},
		{"camera", Translate(-40, 25).Multiply(Scale(1.5, 1.5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(13.5, -4)
			back := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !back.Approx(p, 1e-9) {
				t.Errorf("round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestMatrixInvertDegenerate(t *testing.T) {
	for _, m := range []Matrix{Scale(0, 1), Scale(math.Inf(1), 1), Translate(5, 5).Multiply(Scale(0, 0))} {
		if got := m.Invert(); got != Identity() {
			t.Errorf("Invert(%+v) = %+v, want identity", m, got)
		}
	}
}

func TestMatrixTransformAabb(t *testing.T) {
	m := Translate(-10, 5).Multiply(Scale(-2, 2))
	got := m.TransformAabb(NewAabb(Pt(0, 0), Pt(10, 20)))
	want := NewAabb(Pt(-30, 5), Pt(-10, 45))
	if got != want {
		t.Errorf("TransformAabb = %v, want %v", got, want)
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	tests := []struct {
		m    Matrix
		want float64
	}{
		{Identity(), 1},
		{Scale(2, 2), 2},
		{Translate(5, 5).Multiply(Scale(3, 3)), 3},
		{Scale(-4, 4), 4},
	}
	for _, tt := range tests {
		if got := tt.m.ScaleFactor(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ScaleFactor(%+v) = %v, want %v", tt.m, got, tt.want)
		}
	}
}
