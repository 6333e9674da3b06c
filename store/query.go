package store

import (
	"math"

	"github.com/gogpu/ink"
)

// KeysIntersectingBounds returns the live strokes whose bounds intersect
// bounds, in z-order.
func (s *Store) KeysIntersectingBounds(bounds ink.Aabb) []ink.StrokeKey {
	var keys []ink.StrokeKey
	for _, key := range s.index.search(bounds) {
		if _, ok := s.live(key); ok {
			keys = append(keys, key)
		}
	}
	return s.sortByChrono(keys)
}

// KeysAtPos returns the live strokes with a hitbox containing pos, topmost
// first.
func (s *Store) KeysAtPos(pos ink.Point) []ink.StrokeKey {
	var keys []ink.StrokeKey
	for _, key := range s.KeysIntersectingBounds(ink.NewAabb(pos, pos)) {
		for _, hb := range s.entries[key].stroke.HitBoxes() {
			if hb.Contains(pos) {
				keys = append(keys, key)
				break
			}
		}
	}
	// reverse for topmost first
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// KeysBetween returns the live strokes lying below yMin. With limitVertical
// only strokes ending above yMax are returned, with limitHorizontal only
// strokes inside the horizontal window xLimit (min, max).
func (s *Store) KeysBetween(yMin, yMax float64, xLimit [2]float64, limitVertical, limitHorizontal bool) []ink.StrokeKey {
	query := ink.Aabb{
		Min: ink.Pt(math.Inf(-1), yMin),
		Max: ink.Pt(math.Inf(1), math.Inf(1)),
	}
	if limitVertical {
		query.Max.Y = yMax
	}
	if limitHorizontal {
		query.Min.X, query.Max.X = xLimit[0], xLimit[1]
	}

	var keys []ink.StrokeKey
	for _, key := range s.KeysIntersectingBounds(query) {
		b := s.entries[key].stroke.Bounds()
		if b.Min.Y < yMin {
			continue
		}
		if limitVertical && b.Max.Y > yMax {
			continue
		}
		if limitHorizontal && (b.Min.X < xLimit[0] || b.Max.X > xLimit[1]) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// BoundsForStrokes returns the merged bounds of the given live strokes, or
// false if none of them exists.
func (s *Store) BoundsForStrokes(keys []ink.StrokeKey) (ink.Aabb, bool) {
	var out ink.Aabb
	found := false
	for _, key := range keys {
		e, ok := s.live(key)
		if !ok {
			continue
		}
		b := e.stroke.Bounds()
		if !found {
			out, found = b, true
			continue
		}
		out = out.Merged(b)
	}
	return out, found
}

// BoundsForAllStrokes returns the merged bounds of all live strokes.
func (s *Store) BoundsForAllStrokes() (ink.Aabb, bool) {
	return s.BoundsForStrokes(s.Keys())
}

// CalcHeight returns the lowest y coordinate reached by any live stroke, or
// zero for an empty store.
func (s *Store) CalcHeight() float64 {
	height := 0.0
	for _, e := range s.entries {
		if !e.trashed {
			height = math.Max(height, e.stroke.Bounds().Max.Y)
		}
	}
	return height
}

// TranslateStrokes moves strokes. Their spatial index entries are updated
// right away, cached hitboxes move with the stroke.
func (s *Store) TranslateStrokes(keys []ink.StrokeKey, offset ink.Point) ink.WidgetFlags {
	var flags ink.WidgetFlags
	for _, key := range keys {
		e, ok := s.live(key)
		if !ok {
			continue
		}
		e.stroke.Translate(offset)
		s.reindex(key, e)
		flags.Merge(ink.StoreChanged())
	}
	return flags
}

// TranslateStrokesImages moves the cached images of strokes so they stay
// aligned with translated strokes until they are regenerated.
func (s *Store) TranslateStrokesImages(keys []ink.StrokeKey, offset ink.Point) ink.WidgetFlags {
	var flags ink.WidgetFlags
	for _, key := range keys {
		e, ok := s.live(key)
		if !ok {
			continue
		}
		for _, img := range e.render.images {
			img.Translate(offset)
		}
		flags.Redraw = true
	}
	return flags
}

// UpdateGeometryForStrokes recomputes cached geometry after strokes were
// changed in place and marks their rendering dirty.
func (s *Store) UpdateGeometryForStrokes(keys []ink.StrokeKey) ink.WidgetFlags {
	var flags ink.WidgetFlags
	for _, key := range keys {
		e, ok := s.live(key)
		if !ok {
			continue
		}
		e.stroke.UpdateGeometry()
		s.reindex(key, e)
		flags.Merge(ink.StoreChanged())
	}
	return flags
}
