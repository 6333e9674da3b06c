package stroke

import (
	"errors"
	"testing"

	"github.com/gogpu/ink"
)

func TestNewBrushStrokeRejectsRough(t *testing.T) {
	_, err := NewBrushStroke(ink.NewElement(ink.Pt(0, 0), 0.5), Rough{Width: 2})
	if !errors.Is(err, ErrStyleUnsupported) {
		t.Fatalf("error = %v, want ErrStyleUnsupported", err)
	}
}

func TestBrushStrokePushGrowsBounds(t *testing.T) {
	s, err := NewBrushStroke(ink.NewElement(ink.Pt(10, 10), 0.5), Smooth{Width: 2})
	if err != nil {
		t.Fatal(err)
	}
	s.Push(ink.NewElement(ink.Pt(20, 30), 0.5), ink.NewElement(ink.Pt(5, 15), 0.5))

	want := ink.NewAabb(ink.Pt(4, 9), ink.Pt(21, 31))
	if got := s.Bounds(); !got.Min.Approx(want.Min, 1e-9) || !got.Max.Approx(want.Max, 1e-9) {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := len(s.HitBoxes()); got != 3 {
		t.Errorf("len(HitBoxes()) = %d, want 3", got)
	}

	// incremental and full recomputation agree
	incremental := s.Bounds()
	s.UpdateGeometry()
	if s.Bounds() != incremental {
		t.Errorf("UpdateGeometry bounds %v, incremental %v", s.Bounds(), incremental)
	}
}

func TestStrokeTranslate(t *testing.T) {
	shape, err := NewShapeStroke(NewRectangle(ink.Pt(0, 0), ink.Pt(10, 10)), Smooth{Width: 2})
	if err != nil {
		t.Fatal(err)
	}
	before := shape.Bounds()
	shape.Translate(ink.Pt(5, -5))
	if got, want := shape.Bounds(), before.Translate(ink.Pt(5, -5)); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	shape.UpdateGeometry()
	if got, want := shape.Bounds(), before.Translate(ink.Pt(5, -5)); got != want {
		t.Errorf("after UpdateGeometry Bounds() = %v, want %v", got, want)
	}
}

func TestBrushStrokeCloneIsIndependent(t *testing.T) {
	s, _ := NewBrushStrokeFromPath(testPath(ink.Pt(0, 0), ink.Pt(10, 0)), Smooth{Width: 1})
	c := s.Clone().(*BrushStroke)
	c.Translate(ink.Pt(100, 0))
	if s.Path.Elements[0].Pos != ink.Pt(0, 0) {
		t.Errorf("original moved to %v", s.Path.Elements[0].Pos)
	}
	if c.Path.Elements[0].Pos != ink.Pt(100, 0) {
		t.Errorf("clone at %v, want (100,0)", c.Path.Elements[0].Pos)
	}
}
