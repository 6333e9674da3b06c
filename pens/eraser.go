package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

type eraserState int

const (
	eraserUp eraserState = iota
	eraserProximity
	eraserDown
)

func (s eraserState) String() string {
	switch s {
	case eraserProximity:
		return "proximity"
	case eraserDown:
		return "down"
	}
	return "up"
}

// eraserAction is the side effect of an eraser transition.
type eraserAction struct {
	updateMotion bool
	erase        bool
	record       bool
}

// eraserTransition is the eraser state machine without side effects.
func eraserTransition(state eraserState, event ink.PenEvent) (eraserState, eraserAction, ink.EventResult[ink.PenProgress]) {
	switch event.(type) {
	case ink.DownEvent:
		// Up, Proximity and Down all erase and stay down
		return eraserDown, eraserAction{updateMotion: true, erase: true},
			ink.Consumed(ink.ProgressInProgress)
	case ink.ProximityEvent:
		return eraserProximity, eraserAction{updateMotion: true},
			ink.Unhandled(ink.ProgressIdle)
	case ink.UpEvent:
		if state == eraserDown {
			return eraserUp, eraserAction{erase: true, record: true},
				ink.Consumed(ink.ProgressFinished)
		}
		return eraserUp, eraserAction{}, ink.Unhandled(ink.ProgressIdle)
	case ink.CancelEvent:
		if state == eraserProximity || state == eraserDown {
			return eraserUp, eraserAction{record: true},
				ink.Consumed(ink.ProgressFinished)
		}
		return eraserUp, eraserAction{}, ink.Unhandled(ink.ProgressIdle)
	}
	return state, eraserAction{}, ink.Unhandled(progressOf(state == eraserDown))
}

func progressOf(active bool) ink.PenProgress {
	if active {
		return ink.ProgressInProgress
	}
	return ink.ProgressIdle
}

// Eraser removes or cuts strokes touched by a square around the pointer.
type Eraser struct {
	state   eraserState
	element ink.Element
	motion  Motion
}

// NewEraser creates an eraser in the up state.
func NewEraser() *Eraser { return &Eraser{} }

// Init implements PenBehaviour.
func (e *Eraser) Init(time.Time, *EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// Deinit implements PenBehaviour.
func (e *Eraser) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	_, flags := e.HandleEvent(ink.CancelEvent{}, now, view)
	e.motion.Reset()
	return flags
}

// Style implements PenBehaviour.
func (e *Eraser) Style() PenStyle { return StyleEraser }

// UpdateState implements PenBehaviour.
func (e *Eraser) UpdateState(*EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{Redraw: true} }

// HandleEvent implements PenBehaviour.
func (e *Eraser) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	next, action, result := eraserTransition(e.state, event)
	if el, ok := ink.EventElement(event); ok {
		e.element = el
	}
	if action.updateMotion {
		e.motion.Update(e.element.Pos, now)
	}

	var flags ink.WidgetFlags
	if action.erase {
		flags.Merge(e.erase(view))
	}
	if action.record {
		flags.Merge(view.Document.ResizeAutoexpand(view.Store, view.Camera))
		flags.Merge(view.Store.Record(now))
	}
	if next != e.state {
		ink.Logger().Debug("eraser transition", "from", e.state, "to", next)
		flags.Redraw = true
	}
	e.state = next
	if next == eraserUp {
		e.motion.Reset()
	}
	return result, flags
}

// eraserBounds is the square erased at the current pointer position.
func (e *Eraser) eraserBounds(cfg EraserConfig) ink.Aabb {
	side := cfg.Width
	if cfg.SpeedScaling {
		side *= 1 + e.motion.Speed()/MotionSpeedCap
	}
	return ink.NewAabbFromHalfExtents(e.element.Pos, ink.Pt(side/2, side/2))
}

func (e *Eraser) erase(view *EngineViewMut) ink.WidgetFlags {
	bounds := e.eraserBounds(view.Config.Eraser)
	viewport := view.Camera.Viewport()

	switch view.Config.Eraser.Style {
	case EraserSplitCollidingStrokes:
		keys, flags := view.Store.SplitCollidingStrokes(bounds, viewport)
		view.regenerateStrokes(keys)
		return flags
	default:
		return view.Store.TrashCollidingStrokes(bounds, viewport)
	}
}

// Bounds implements PenBehaviour.
func (e *Eraser) Bounds(view *EngineView) (ink.Aabb, bool) {
	if e.state == eraserUp {
		return ink.Aabb{}, false
	}
	return e.eraserBounds(view.Config.Eraser), true
}

// DrawOverlay outlines the eraser.
func (e *Eraser) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if b, ok := e.Bounds(view); ok {
		c.StrokeRect(b, ink.RGB(0.5, 0.5, 0.5), 1)
	}
	return nil
}
