package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/stroke"
)

// Shaper draws lines, rectangles and ellipses between the press point and
// the current pointer position. Nothing is inserted until the gesture ends.
type Shaper struct {
	building bool
	start    ink.Point
	current  ink.Point
}

// NewShaper creates an idle shaper.
func NewShaper() *Shaper { return &Shaper{} }

// Init implements PenBehaviour.
func (s *Shaper) Init(time.Time, *EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// Deinit implements PenBehaviour. A shape in progress is dropped.
func (s *Shaper) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	_, flags := s.HandleEvent(ink.CancelEvent{}, now, view)
	return flags
}

// Style implements PenBehaviour.
func (s *Shaper) Style() PenStyle { return StyleShaper }

// UpdateState implements PenBehaviour.
func (s *Shaper) UpdateState(*EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{Redraw: true} }

// HandleEvent implements PenBehaviour.
func (s *Shaper) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	switch ev := event.(type) {
	case ink.DownEvent:
		pos := ev.Element.Pos
		if !s.building {
			s.building = true
			s.start = pos
		}
		s.current = pos
		flags := view.nudgeAndExpand(pos)
		flags.Redraw = true
		return ink.Consumed(ink.ProgressInProgress), flags
	case ink.UpEvent:
		if !s.building {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		s.current = ev.Element.Pos
		flags := s.insert(now, view)
		s.building = false
		flags.Redraw = true
		return ink.Consumed(ink.ProgressFinished), flags
	case ink.CancelEvent:
		if !s.building {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		s.building = false
		return ink.Consumed(ink.ProgressFinished), ink.WidgetFlags{Redraw: true}
	}
	return ink.Unhandled(progressOf(s.building)), ink.WidgetFlags{}
}

func (s *Shaper) shape(cfg ShaperConfig) (*stroke.ShapeStroke, error) {
	return stroke.NewShapeStroke(stroke.BuildShape(cfg.Kind, s.start, s.current), cfg.StrokeStyle())
}

func (s *Shaper) insert(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	st, err := s.shape(view.Config.Shaper)
	if err != nil {
		ink.Logger().Warn("shaper: cannot build shape", "kind", view.Config.Shaper.Kind, "err", err)
		return ink.WidgetFlags{}
	}
	key := view.Store.InsertStroke(st)
	flags := ink.StoreChanged()
	flags.Merge(view.finishGesture([]ink.StrokeKey{key}, now, true))
	return flags
}

// Bounds implements PenBehaviour.
func (s *Shaper) Bounds(view *EngineView) (ink.Aabb, bool) {
	if !s.building {
		return ink.Aabb{}, false
	}
	st, err := s.shape(view.Config.Shaper)
	if err != nil {
		return ink.Aabb{}, false
	}
	return st.Bounds(), true
}

// DrawOverlay draws the shape being built.
func (s *Shaper) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if !s.building {
		return nil
	}
	st, err := s.shape(view.Config.Shaper)
	if err != nil {
		return err
	}
	return drawStrokeNow(c, st, view)
}
