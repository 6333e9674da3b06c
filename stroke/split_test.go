package stroke

import (
	"testing"

	"github.com/gogpu/ink"
)

func TestPenPathSplitAt(t *testing.T) {
	path := testPath(
		ink.Pt(0, 0), ink.Pt(10, 0), ink.Pt(20, 0),
		ink.Pt(30, 0), ink.Pt(40, 0), ink.Pt(50, 0),
	)

	tests := []struct {
		name       string
		eraser     ink.Aabb
		wantHit    bool
		wantPieces []int
	}{
		{"miss", ink.NewAabb(ink.Pt(0, 10), ink.Pt(50, 20)), false, nil},
		{"middle", ink.NewAabb(ink.Pt(18, -5), ink.Pt(32, 5)), true, []int{2, 2}},
		{"start", ink.NewAabb(ink.Pt(-5, -5), ink.Pt(5, 5)), true, []int{5}},
		{"crosses segment only", ink.NewAabb(ink.Pt(13, -5), ink.Pt(17, 5)), true, []int{2, 4}},
		{"everything", ink.NewAabb(ink.Pt(-5, -5), ink.Pt(55, 5)), true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, hit := path.SplitAt(tt.eraser)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if len(pieces) != len(tt.wantPieces) {
				t.Fatalf("got %d pieces, want %d", len(pieces), len(tt.wantPieces))
			}
			for i, n := range tt.wantPieces {
				if got := len(pieces[i].Elements); got != n {
					t.Errorf("piece %d has %d elements, want %d", i, got, n)
				}
			}
		})
	}
}

func TestBrushStrokeSplitKeepsStyle(t *testing.T) {
	style := Smooth{Width: 3, Color: ink.Red}
	s, _ := NewBrushStrokeFromPath(testPath(ink.Pt(0, 0), ink.Pt(10, 0), ink.Pt(20, 0), ink.Pt(30, 0), ink.Pt(40, 0)), style)
	pieces, hit := s.Split(ink.NewAabb(ink.Pt(18, -1), ink.Pt(22, 1)))
	if !hit || len(pieces) != 2 {
		t.Fatalf("hit = %v, pieces = %d", hit, len(pieces))
	}
	for _, p := range pieces {
		if p.Style != Style(style) {
			t.Errorf("piece style = %v", p.Style)
		}
		if !p.Bounds().IsValid() {
			t.Errorf("piece bounds %v invalid", p.Bounds())
		}
	}
}
