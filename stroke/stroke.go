package stroke

import (
	"fmt"

	"github.com/gogpu/ink"
)

// Stroke is one entry of the stroke store.
type Stroke interface {
	// Bounds covers everything the stroke draws, style margin included.
	Bounds() ink.Aabb
	// HitBoxes are the boxes used for collision tests such as erasing.
	HitBoxes() []ink.Aabb
	// Translate moves the stroke. Cached geometry is updated lazily by
	// UpdateGeometry.
	Translate(offset ink.Point)
	// UpdateGeometry recomputes cached bounds and hitboxes.
	UpdateGeometry()
	// Compose produces the fillable outlines of the stroke.
	Compose() (Composition, error)
	// Clone returns a deep copy safe to hand to a render worker.
	Clone() Stroke
}

// BrushStroke is a freehand pen path drawn with a style.
type BrushStroke struct {
	Path  PenPath
	Style Style

	bounds   ink.Aabb
	hitboxes []ink.Aabb
}

// NewBrushStroke starts a brush stroke at the first element.
func NewBrushStroke(first ink.Element, style Style) (*BrushStroke, error) {
	return NewBrushStrokeFromPath(PenPath{Elements: []ink.Element{first}}, style)
}

// NewBrushStrokeFromPath creates a brush stroke from a complete path.
func NewBrushStrokeFromPath(path PenPath, style Style) (*BrushStroke, error) {
	if style == nil || !style.Supports(path) {
		return nil, fmt.Errorf("%w: brush with style %v", ErrStyleUnsupported, styleName(style))
	}
	s := &BrushStroke{Path: path, Style: style}
	s.UpdateGeometry()
	return s, nil
}

// Push appends elements and grows the cached geometry incrementally.
func (s *BrushStroke) Push(elements ...ink.Element) {
	margin := s.Style.BoundsMargin()
	for _, el := range elements {
		n := len(s.Path.Elements)
		s.Path.Elements = append(s.Path.Elements, el)
		box := ink.NewAabbFromPoints(el.Pos).Loosened(margin)
		if n > 0 {
			box = ink.NewAabb(s.Path.Elements[n-1].Pos, el.Pos).Loosened(margin)
		}
		s.hitboxes = append(s.hitboxes, box)
		s.bounds = s.bounds.Merged(box)
	}
}

// Bounds implements Stroke.
func (s *BrushStroke) Bounds() ink.Aabb { return s.bounds }

// HitBoxes implements Stroke.
func (s *BrushStroke) HitBoxes() []ink.Aabb { return s.hitboxes }

// Translate implements Stroke.
func (s *BrushStroke) Translate(offset ink.Point) {
	s.Path = s.Path.Translated(offset).(PenPath)
	s.bounds = s.bounds.Translate(offset)
	for i := range s.hitboxes {
		s.hitboxes[i] = s.hitboxes[i].Translate(offset)
	}
}

// UpdateGeometry implements Stroke.
func (s *BrushStroke) UpdateGeometry() {
	margin := s.Style.BoundsMargin()
	s.bounds = s.Path.Bounds().Loosened(margin)
	s.hitboxes = s.Path.HitBoxes(margin)
}

// Compose implements Stroke.
func (s *BrushStroke) Compose() (Composition, error) {
	return s.Style.Compose(s.Path)
}

// Clone implements Stroke.
func (s *BrushStroke) Clone() Stroke {
	out := *s
	out.Path.Elements = append([]ink.Element(nil), s.Path.Elements...)
	out.hitboxes = append([]ink.Aabb(nil), s.hitboxes...)
	return &out
}

// ShapeStroke is a geometric shape drawn with a style.
type ShapeStroke struct {
	Shape Shape
	Style Style

	bounds   ink.Aabb
	hitboxes []ink.Aabb
}

// NewShapeStroke creates a shape stroke. It fails with ErrStyleUnsupported if
// the style cannot draw the shape.
func NewShapeStroke(shape Shape, style Style) (*ShapeStroke, error) {
	if style == nil || !style.Supports(shape) {
		return nil, fmt.Errorf("%w: %T with style %v", ErrStyleUnsupported, shape, styleName(style))
	}
	s := &ShapeStroke{Shape: shape, Style: style}
	s.UpdateGeometry()
	return s, nil
}

// Bounds implements Stroke.
func (s *ShapeStroke) Bounds() ink.Aabb { return s.bounds }

// HitBoxes implements Stroke.
func (s *ShapeStroke) HitBoxes() []ink.Aabb { return s.hitboxes }

// Translate implements Stroke.
func (s *ShapeStroke) Translate(offset ink.Point) {
	s.Shape = s.Shape.Translated(offset)
	s.bounds = s.bounds.Translate(offset)
	for i := range s.hitboxes {
		s.hitboxes[i] = s.hitboxes[i].Translate(offset)
	}
}

// UpdateGeometry implements Stroke.
func (s *ShapeStroke) UpdateGeometry() {
	margin := s.Style.BoundsMargin()
	s.bounds = s.Shape.Bounds().Loosened(margin)
	s.hitboxes = s.Shape.HitBoxes(margin)
}

// Compose implements Stroke.
func (s *ShapeStroke) Compose() (Composition, error) {
	return s.Style.Compose(s.Shape)
}

// Clone implements Stroke.
func (s *ShapeStroke) Clone() Stroke {
	out := *s
	if path, ok := s.Shape.(PenPath); ok {
		out.Shape = PenPath{Elements: append([]ink.Element(nil), path.Elements...)}
	}
	out.hitboxes = append([]ink.Aabb(nil), s.hitboxes...)
	return &out
}

func styleName(style Style) string {
	if style == nil {
		return "<nil>"
	}
	return style.Name()
}
