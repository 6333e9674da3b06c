package stroke

import (
	"errors"
	"testing"

	"github.com/gogpu/ink"
)

func testPath(points ...ink.Point) PenPath {
	p := PenPath{}
	for _, pt := range points {
		p.Elements = append(p.Elements, ink.NewElement(pt, ink.PressureDefault))
	}
	return p
}

func TestStyleSupports(t *testing.T) {
	path := testPath(ink.Pt(0, 0), ink.Pt(10, 0))
	line := Line{Start: ink.Pt(0, 0), End: ink.Pt(10, 10)}
	rect := NewRectangle(ink.Pt(0, 0), ink.Pt(10, 10))
	ellipse := NewEllipseFromCorners(ink.Pt(0, 0), ink.Pt(10, 10))

	tests := []struct {
		name  string
		style Style
		shape Shape
		want  bool
	}{
		{"smooth path", Smooth{Width: 2}, path, true},
		{"smooth ellipse", Smooth{Width: 2}, ellipse, true},
		{"rough path", Rough{Width: 2, Roughness: 0.5}, path, false},
		{"rough rect", Rough{Width: 2, Roughness: 0.5}, rect, true},
		{"textured path", Textured{Width: 2, Density: 1}, path, true},
		{"textured line", Textured{Width: 2, Density: 1}, line, true},
		{"textured rect", Textured{Width: 2, Density: 1}, rect, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.Supports(tt.shape); got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
			comp, err := tt.style.Compose(tt.shape)
			if tt.want {
				if err != nil {
					t.Fatalf("Compose() error = %v", err)
				}
				if comp.IsEmpty() {
					t.Error("Compose() returned an empty composition")
				}
				return
			}
			if !errors.Is(err, ErrStyleUnsupported) {
				t.Errorf("Compose() error = %v, want ErrStyleUnsupported", err)
			}
		})
	}
}

func TestComposeStaysWithinBoundsMargin(t *testing.T) {
	styles := []Style{
		Smooth{Width: 4, Color: ink.Black},
		Rough{Width: 4, Color: ink.Black, Roughness: 0.5, Seed: 7},
	}
	shape := NewRectangle(ink.Pt(10, 10), ink.Pt(60, 40))
	for _, style := range styles {
		t.Run(style.Name(), func(t *testing.T) {
			comp, err := style.Compose(shape)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := comp.Bounds()
			if !ok {
				t.Fatal("empty composition")
			}
			limit := shape.Bounds().Loosened(style.BoundsMargin() + 1e-9)
			if !limit.ContainsAabb(got) {
				t.Errorf("composition bounds %v exceed %v", got, limit)
			}
		})
	}
}

func TestRoughIsDeterministic(t *testing.T) {
	style := Rough{Width: 2, Roughness: 1, Seed: 42}
	shape := NewEllipseFromCorners(ink.Pt(0, 0), ink.Pt(50, 30))
	a, err := style.Compose(shape)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := style.Compose(shape)
	if len(a.Fills) != len(b.Fills) {
		t.Fatalf("fill count %d != %d", len(a.Fills), len(b.Fills))
	}
	for i := range a.Fills {
		for j := range a.Fills[i].Polygon {
			if a.Fills[i].Polygon[j] != b.Fills[i].Polygon[j] {
				t.Fatalf("fill %d point %d differs", i, j)
			}
		}
	}
}

func TestShapeKindText(t *testing.T) {
	for _, kind := range []ShapeKind{ShapeLine, ShapeRectangle, ShapeEllipse} {
		var got ShapeKind
		if err := got.UnmarshalText([]byte(kind.String())); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", kind, err)
		}
		if got != kind {
			t.Errorf("got %v, want %v", got, kind)
		}
	}
	var k ShapeKind
	if err := k.UnmarshalText([]byte("triangle")); err == nil {
		t.Error("expected error for unknown shape kind")
	}
}
