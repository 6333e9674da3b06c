package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/stroke"
)

// Brush draws freehand strokes. The stroke is inserted into the store when
// the gesture starts and grows with every sample.
type Brush struct {
	key     ink.StrokeKey
	drawing bool
}

// NewBrush creates an idle brush.
func NewBrush() *Brush { return &Brush{} }

// Init implements PenBehaviour.
func (b *Brush) Init(time.Time, *EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// Deinit implements PenBehaviour. A stroke in progress is kept.
func (b *Brush) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	if !b.drawing {
		return ink.WidgetFlags{}
	}
	return b.finish(now, view)
}

// Style implements PenBehaviour.
func (b *Brush) Style() PenStyle { return StyleBrush }

// UpdateState implements PenBehaviour.
func (b *Brush) UpdateState(*EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// HandleEvent implements PenBehaviour.
func (b *Brush) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	switch ev := event.(type) {
	case ink.DownEvent:
		if !b.drawing {
			return b.start(ev.Element, view)
		}
		return ink.Consumed(ink.ProgressInProgress), b.push(ev.Element, view)
	case ink.UpEvent:
		if !b.drawing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		flags := b.push(ev.Element, view)
		flags.Merge(b.finish(now, view))
		return ink.Consumed(ink.ProgressFinished), flags
	case ink.CancelEvent:
		if !b.drawing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		flags := ink.StoreChanged()
		if _, err := view.Store.RemoveStroke(b.key); err != nil {
			ink.Logger().Warn("brush: removing cancelled stroke", "key", b.key, "err", err)
		}
		b.reset()
		return ink.Consumed(ink.ProgressFinished), flags
	}
	return ink.Unhandled(progressOf(b.drawing)), ink.WidgetFlags{}
}

func (b *Brush) start(el ink.Element, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	s, err := stroke.NewBrushStroke(el, view.Config.Brush.StrokeStyle())
	if err != nil {
		ink.Logger().Warn("brush: cannot start stroke", "style", view.Config.Brush.Style, "err", err)
		return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
	}
	b.key = view.Store.InsertStroke(s)
	b.drawing = true
	flags := ink.StoreChanged()
	flags.Merge(view.nudgeAndExpand(el.Pos))
	return ink.Consumed(ink.ProgressInProgress), flags
}

func (b *Brush) push(el ink.Element, view *EngineViewMut) ink.WidgetFlags {
	s, err := view.Store.Stroke(b.key)
	if err != nil {
		ink.Logger().Warn("brush: stroke vanished", "key", b.key, "err", err)
		return ink.WidgetFlags{}
	}
	bs, ok := s.(*stroke.BrushStroke)
	if !ok {
		return ink.WidgetFlags{}
	}
	bs.Push(el)
	flags := view.Store.UpdateGeometryForStrokes([]ink.StrokeKey{b.key})
	flags.Merge(view.nudgeAndExpand(el.Pos))
	return flags
}

func (b *Brush) finish(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	flags := view.finishGesture([]ink.StrokeKey{b.key}, now, true)
	b.reset()
	return flags
}

func (b *Brush) reset() {
	b.key = 0
	b.drawing = false
}

// Bounds implements PenBehaviour.
func (b *Brush) Bounds(view *EngineView) (ink.Aabb, bool) {
	if !b.drawing {
		return ink.Aabb{}, false
	}
	bounds, ok := view.Store.BoundsForStrokes([]ink.StrokeKey{b.key})
	return bounds, ok
}

// DrawOverlay draws the stroke in progress, which has no cached images yet.
func (b *Brush) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if !b.drawing {
		return nil
	}
	s, err := view.Store.Stroke(b.key)
	if err != nil {
		return err
	}
	return drawStrokeNow(c, s, view)
}
