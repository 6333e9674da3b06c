package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

// StoreReader is the read-only part of the stroke store used by pens.
type StoreReader interface {
	ink.ContentSource
	Stroke(key ink.StrokeKey) (stroke.Stroke, error)
	Keys() []ink.StrokeKey
	KeysBetween(yMin, yMax float64, xLimit [2]float64, limitVertical, limitHorizontal bool) []ink.StrokeKey
	KeysIntersectingBounds(bounds ink.Aabb) []ink.StrokeKey
	KeysAtPos(pos ink.Point) []ink.StrokeKey
	BoundsForStrokes(keys []ink.StrokeKey) (ink.Aabb, bool)
	SelectedKeys() []ink.StrokeKey
}

// StrokeStore is the contract pens require from the stroke store. Every
// mutating method reports StoreModified in its flags when it changed
// anything, and all geometry is in document space.
type StrokeStore interface {
	StoreReader

	InsertStroke(s stroke.Stroke) ink.StrokeKey
	RemoveStroke(key ink.StrokeKey) (stroke.Stroke, error)
	SetSelected(keys []ink.StrokeKey, selected bool) ink.WidgetFlags
	SetTrashed(keys []ink.StrokeKey, trashed bool) ink.WidgetFlags

	TrashCollidingStrokes(eraser, viewport ink.Aabb) ink.WidgetFlags
	SplitCollidingStrokes(eraser, viewport ink.Aabb) ([]ink.StrokeKey, ink.WidgetFlags)
	TranslateStrokes(keys []ink.StrokeKey, offset ink.Point) ink.WidgetFlags
	TranslateStrokesImages(keys []ink.StrokeKey, offset ink.Point) ink.WidgetFlags
	UpdateGeometryForStrokes(keys []ink.StrokeKey) ink.WidgetFlags

	RegenerateRenderingInViewportThreaded(sender ink.TaskSender, force bool, viewport ink.Aabb, scale float64)
	RegenerateRenderingForStrokesThreaded(sender ink.TaskSender, keys []ink.StrokeKey, viewport ink.Aabb, scale float64)

	// Record stores the current state as one undo step. It is a no-op
	// when nothing changed since the last step.
	Record(now time.Time) ink.WidgetFlags
}

// EngineView is read-only access to the engine for one call.
type EngineView struct {
	Tasks    ink.TaskSender
	Config   *Config
	Document *ink.Document
	Store    StoreReader
	Camera   *ink.Camera
}

// EngineViewMut is mutable access to the engine for one call.
type EngineViewMut struct {
	Tasks    ink.TaskSender
	Config   *Config
	Document *ink.Document
	Store    StrokeStore
	Camera   *ink.Camera
}

// AsImm returns the read-only view.
func (v *EngineViewMut) AsImm() *EngineView {
	return &EngineView{
		Tasks:    v.Tasks,
		Config:   v.Config,
		Document: v.Document,
		Store:    v.Store,
		Camera:   v.Camera,
	}
}

// regenerateViewport schedules rendering of the current viewport.
func (v *EngineViewMut) regenerateViewport(force bool) {
	v.Store.RegenerateRenderingInViewportThreaded(v.Tasks, force, v.Camera.Viewport(), v.Camera.ImageScale())
}

// regenerateStrokes schedules rendering of the given strokes.
func (v *EngineViewMut) regenerateStrokes(keys []ink.StrokeKey) {
	if len(keys) == 0 {
		return
	}
	v.Store.RegenerateRenderingForStrokesThreaded(v.Tasks, keys, v.Camera.Viewport(), v.Camera.ImageScale())
}

// nudgeAndExpand scrolls when pos is near the viewport edge and grows
// auto-expanding documents to follow.
func (v *EngineViewMut) nudgeAndExpand(pos ink.Point) ink.WidgetFlags {
	flags := v.Camera.NudgeWithPos(pos, v.Document)
	flags.Merge(v.Document.ExpandAutoexpand(v.Camera, v.Store))
	return flags
}

// finishGesture regenerates the given strokes, resizes the document and
// records one history step.
func (v *EngineViewMut) finishGesture(keys []ink.StrokeKey, now time.Time, record bool) ink.WidgetFlags {
	var flags ink.WidgetFlags
	if len(keys) > 0 {
		flags.Merge(v.Store.UpdateGeometryForStrokes(keys))
		v.regenerateStrokes(keys)
	}
	flags.Merge(v.Document.ResizeAutoexpand(v.Store, v.Camera))
	if record {
		flags.Merge(v.Store.Record(now))
	}
	return flags
}
