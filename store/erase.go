package store

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

// colliding returns the live strokes with a hitbox intersecting the part of
// eraser inside viewport.
func (s *Store) colliding(eraser, viewport ink.Aabb) (keys []ink.StrokeKey, area ink.Aabb) {
	area, ok := eraser.Intersection(viewport)
	if !ok {
		return nil, area
	}
	for _, key := range s.KeysIntersectingBounds(area) {
		for _, hb := range s.entries[key].stroke.HitBoxes() {
			if hb.Intersects(area) {
				keys = append(keys, key)
				break
			}
		}
	}
	return keys, area
}

// TrashCollidingStrokes moves every stroke touched by the eraser bounds
// inside viewport to the trash.
func (s *Store) TrashCollidingStrokes(eraser, viewport ink.Aabb) ink.WidgetFlags {
	keys, _ := s.colliding(eraser, viewport)
	if len(keys) == 0 {
		return ink.WidgetFlags{}
	}
	ink.Logger().Debug("trash colliding strokes", "count", len(keys))
	return s.SetTrashed(keys, true)
}

// SplitCollidingStrokes cuts the parts of brush strokes inside the eraser
// bounds clipped to viewport and replaces each cut stroke by its remaining
// pieces. Other stroke kinds cannot be cut and are trashed whole. It returns the keys of the new
// pieces, which need their rendering regenerated.
func (s *Store) SplitCollidingStrokes(eraser, viewport ink.Aabb) ([]ink.StrokeKey, ink.WidgetFlags) {
	var (
		added []ink.StrokeKey
		flags ink.WidgetFlags
	)
	keys, area := s.colliding(eraser, viewport)
	for _, key := range keys {
		e := s.entries[key]
		brush, ok := e.stroke.(*stroke.BrushStroke)
		if !ok {
			flags.Merge(s.SetTrashed([]ink.StrokeKey{key}, true))
			continue
		}
		pieces, hit := brush.Split(area)
		if !hit {
			continue
		}
		// pieces keep the z-order of the stroke they came from
		for _, piece := range pieces {
			added = append(added, s.insertWithChrono(piece, e.chrono))
		}
		flags.Merge(s.SetTrashed([]ink.StrokeKey{key}, true))
	}
	if len(added) > 0 {
		flags.Merge(ink.StoreChanged())
	}
	return added, flags
}
