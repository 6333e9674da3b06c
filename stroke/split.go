package stroke

import "github.com/gogpu/ink"

// SplitAt cuts the parts of the path that lie inside eraser. It returns the
// remaining pieces with at least two elements each, and whether the eraser
// touched the path at all.
func (p PenPath) SplitAt(eraser ink.Aabb) (pieces []PenPath, hit bool) {
	var run []ink.Element
	flush := func() {
		if len(run) >= 2 {
			pieces = append(pieces, PenPath{Elements: run})
		}
		run = nil
	}

	for i, el := range p.Elements {
		if eraser.Contains(el.Pos) {
			hit = true
			flush()
			continue
		}
		if len(run) > 0 && segmentIntersects(p.Elements[i-1].Pos, el.Pos, eraser) {
			hit = true
			flush()
		}
		run = append(run, el)
	}
	flush()

	if !hit {
		return nil, false
	}
	return pieces, true
}

// Split erases the parts inside eraser and returns the remaining pieces as
// new strokes with the same style. hit is false if nothing was erased.
func (s *BrushStroke) Split(eraser ink.Aabb) (pieces []*BrushStroke, hit bool) {
	paths, hit := s.Path.SplitAt(eraser)
	if !hit {
		return nil, false
	}
	pieces = make([]*BrushStroke, 0, len(paths))
	for _, path := range paths {
		piece := &BrushStroke{Path: path, Style: s.Style}
		piece.UpdateGeometry()
		pieces = append(pieces, piece)
	}
	return pieces, true
}

// segmentIntersects clips the segment a-b against the box (Liang-Barsky).
func segmentIntersects(a, b ink.Point, box ink.Aabb) bool {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}
	return clip(-d.X, a.X-box.Min.X) &&
		clip(d.X, box.Max.X-a.X) &&
		clip(-d.Y, a.Y-box.Min.Y) &&
		clip(d.Y, box.Max.Y-a.Y)
}
