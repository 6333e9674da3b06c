package stroke

import (
	"testing"

	"github.com/gogpu/ink"
)

func TestLayoutTextSingleLine(t *testing.T) {
	l := LayoutText("hello", 20, 0)
	if len(l.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(l.Lines))
	}
	line := l.Lines[0]
	if line.Start != 0 || line.End != 5 {
		t.Errorf("line spans [%d,%d), want [0,5)", line.Start, line.End)
	}
	if line.Width <= 0 {
		t.Errorf("line width = %f, want > 0", line.Width)
	}
	for i := 1; i < len(line.Offsets); i++ {
		if line.Offsets[i] < line.Offsets[i-1] {
			t.Errorf("offsets not monotonic at %d: %v", i, line.Offsets)
		}
	}
	if l.Height != l.LineHeight {
		t.Errorf("height = %f, want %f", l.Height, l.LineHeight)
	}
}

func TestLayoutTextNewlines(t *testing.T) {
	l := LayoutText("ab\n\ncd", 20, 0)
	if len(l.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(l.Lines))
	}
	wantSpans := [][2]int{{0, 2}, {3, 3}, {4, 6}}
	for i, want := range wantSpans {
		if got := [2]int{l.Lines[i].Start, l.Lines[i].End}; got != want {
			t.Errorf("line %d spans %v, want %v", i, got, want)
		}
	}
	if got := l.CaretPosition(4); got.Y != 2*l.LineHeight || got.X != 0 {
		t.Errorf("CaretPosition(4) = %v", got)
	}
}

func TestLayoutTextWraps(t *testing.T) {
	const text = "alpha beta gamma delta"
	full := LayoutText(text, 20, 0)
	wrapped := LayoutText(text, 20, full.Width*0.5)
	if len(wrapped.Lines) < 2 {
		t.Fatalf("got %d lines, want at least 2", len(wrapped.Lines))
	}
	runes := []rune(text)
	next := 0
	for i, line := range wrapped.Lines {
		if line.Start != next {
			t.Errorf("line %d starts at %d, want %d", i, line.Start, next)
		}
		if i > 0 && runes[line.Start] == ' ' {
			t.Errorf("line %d starts with a space", i)
		}
		next = line.End
	}
	if next != len(runes) {
		t.Errorf("lines end at %d, want %d", next, len(runes))
	}
}

func TestTextStrokeEditing(t *testing.T) {
	s := NewTextStroke("", ink.Pt(10, 10), DefaultTextStyle())
	cursor := s.InsertText(0, "helo")
	if cursor != 4 {
		t.Fatalf("cursor = %d, want 4", cursor)
	}
	cursor = s.InsertText(3, "l")
	if s.Text != "hello" || cursor != 4 {
		t.Fatalf("text = %q cursor = %d", s.Text, cursor)
	}
	cursor = s.RemoveBefore(5)
	if s.Text != "hell" || cursor != 4 {
		t.Fatalf("text = %q cursor = %d", s.Text, cursor)
	}
	cursor = s.RemoveAfter(0)
	if s.Text != "ell" || cursor != 0 {
		t.Fatalf("text = %q cursor = %d", s.Text, cursor)
	}
	if got := s.RemoveBefore(0); got != 0 || s.Text != "ell" {
		t.Errorf("RemoveBefore(0) changed text to %q", s.Text)
	}
}

func TestTextStrokeNormalizesInput(t *testing.T) {
	s := NewTextStroke("e", ink.Pt(0, 0), DefaultTextStyle())
	cursor := s.InsertText(1, "\u0301")
	if s.Text != "\u00e9" {
		t.Errorf("text = %q, want composed é", s.Text)
	}
	if cursor != 1 {
		t.Errorf("cursor = %d, want 1", cursor)
	}
}

func TestTextStrokeBoundsAndCompose(t *testing.T) {
	s := NewTextStroke("one\ntwo", ink.Pt(100, 50), DefaultTextStyle())
	b := s.Bounds()
	if b.Min != ink.Pt(100, 50) {
		t.Errorf("bounds min = %v", b.Min)
	}
	if got := len(s.HitBoxes()); got != 2 {
		t.Errorf("len(HitBoxes()) = %d, want 2", got)
	}
	comp, err := s.Compose()
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.Texts) != 2 || comp.Texts[0].Text != "one" || comp.Texts[1].Text != "two" {
		t.Fatalf("runs = %+v", comp.Texts)
	}
	if comp.Texts[1].Origin.Y <= comp.Texts[0].Origin.Y {
		t.Error("second line not below the first")
	}

	s.Translate(ink.Pt(5, 5))
	if got := s.Bounds().Min; got != ink.Pt(105, 55) {
		t.Errorf("translated bounds min = %v", got)
	}
}
