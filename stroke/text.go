package stroke

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ink"
)

// TextStyle configures a text stroke. MaxWidth wraps lines at word
// boundaries, zero disables wrapping.
type TextStyle struct {
	FontSize float64   `toml:"font_size"`
	Color    ink.Color `toml:"color"`
	MaxWidth float64   `toml:"max_width"`
}

// DefaultTextStyle returns the typewriter defaults.
func DefaultTextStyle() TextStyle {
	return TextStyle{FontSize: 24, Color: ink.Black, MaxWidth: 600}
}

// TextStroke is a block of text anchored at its top left corner.
type TextStroke struct {
	Text  string
	Pos   ink.Point
	Style TextStyle
}

// NewTextStroke returns a text stroke with NFC normalized text.
func NewTextStroke(text string, pos ink.Point, style TextStyle) *TextStroke {
	return &TextStroke{Text: norm.NFC.String(text), Pos: pos, Style: style}
}

// Layout returns the (cached) layout of the text.
func (s *TextStroke) Layout() TextLayout {
	return LayoutText(s.Text, s.Style.FontSize, s.Style.MaxWidth)
}

// RuneCount returns the number of runes, the largest valid cursor index.
func (s *TextStroke) RuneCount() int {
	return utf8.RuneCountInString(s.Text)
}

// Bounds implements Stroke. An empty text still occupies one caret wide line.
func (s *TextStroke) Bounds() ink.Aabb {
	l := s.Layout()
	w := max(l.Width, s.Style.FontSize*0.1)
	h := max(l.Height, l.LineHeight)
	return ink.NewAabb(s.Pos, s.Pos.Add(ink.Pt(w, h)))
}

// HitBoxes implements Stroke, one box per line.
func (s *TextStroke) HitBoxes() []ink.Aabb {
	l := s.Layout()
	boxes := make([]ink.Aabb, 0, len(l.Lines))
	for i, line := range l.Lines {
		top := s.Pos.Y + float64(i)*l.LineHeight
		boxes = append(boxes, ink.NewAabb(
			ink.Pt(s.Pos.X, top),
			ink.Pt(s.Pos.X+max(line.Width, 1), top+l.LineHeight),
		))
	}
	return boxes
}

// Translate implements Stroke.
func (s *TextStroke) Translate(offset ink.Point) {
	s.Pos = s.Pos.Add(offset)
}

// UpdateGeometry implements Stroke. Layouts are computed lazily.
func (s *TextStroke) UpdateGeometry() {}

// Compose implements Stroke, emitting one run per line on its baseline.
func (s *TextStroke) Compose() (Composition, error) {
	l := s.Layout()
	runes := []rune(s.Text)
	var c Composition
	for i, line := range l.Lines {
		if line.End <= line.Start {
			continue
		}
		c.Texts = append(c.Texts, TextRun{
			Origin:   s.Pos.Add(ink.Pt(0, float64(i)*l.LineHeight+l.Ascent)),
			Text:     string(runes[line.Start:line.End]),
			FontSize: s.Style.FontSize,
			Color:    s.Style.Color,
		})
	}
	return c, nil
}

// Clone implements Stroke.
func (s *TextStroke) Clone() Stroke {
	c := *s
	return &c
}

// InsertText inserts text before rune index cursor and returns the new
// cursor. The result is NFC normalized, which may merge combining marks.
func (s *TextStroke) InsertText(cursor int, text string) int {
	runes := []rune(s.Text)
	cursor = clampCursor(cursor, len(runes))
	before := string(runes[:cursor])
	after := string(runes[cursor:])

	head := norm.NFC.String(before + text)
	s.Text = norm.NFC.String(head + after)
	return utf8.RuneCountInString(head)
}

// RemoveBefore deletes the rune before cursor and returns the new cursor.
func (s *TextStroke) RemoveBefore(cursor int) int {
	runes := []rune(s.Text)
	cursor = clampCursor(cursor, len(runes))
	if cursor == 0 {
		return 0
	}
	s.Text = string(append(runes[:cursor-1:cursor-1], runes[cursor:]...))
	return cursor - 1
}

// RemoveAfter deletes the rune after cursor.
func (s *TextStroke) RemoveAfter(cursor int) int {
	runes := []rune(s.Text)
	cursor = clampCursor(cursor, len(runes))
	if cursor == len(runes) {
		return cursor
	}
	s.Text = string(append(runes[:cursor:cursor], runes[cursor+1:]...))
	return cursor
}

// CaretBounds returns the caret rectangle before rune index cursor in
// document coordinates.
func (s *TextStroke) CaretBounds(cursor int) ink.Aabb {
	l := s.Layout()
	p := s.Pos.Add(l.CaretPosition(clampCursor(cursor, s.RuneCount())))
	w := max(s.Style.FontSize*0.08, 1)
	return ink.NewAabb(p, p.Add(ink.Pt(w, l.LineHeight)))
}

func clampCursor(cursor, n int) int {
	return min(max(cursor, 0), n)
}
