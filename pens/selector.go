package pens

import (
	"time"
	"unicode"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

type selectorState int

const (
	selectorIdle selectorState = iota
	// selectorSelecting drags a rubber band.
	selectorSelecting
	// selectorTranslating moves the selection.
	selectorTranslating
)

// Selector selects strokes with a rubber band or a click and moves or
// deletes the selection.
type Selector struct {
	state   selectorState
	start   ink.Point
	current ink.Point
}

// NewSelector creates an idle selector.
func NewSelector() *Selector { return &Selector{} }

// Init implements PenBehaviour.
func (s *Selector) Init(time.Time, *EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// Deinit implements PenBehaviour. The selection is cleared.
func (s *Selector) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	_, flags := s.HandleEvent(ink.CancelEvent{}, now, view)
	flags.Merge(deselectAll(view))
	return flags
}

// Style implements PenBehaviour.
func (s *Selector) Style() PenStyle { return StyleSelector }

// UpdateState implements PenBehaviour.
func (s *Selector) UpdateState(*EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{Redraw: true} }

// HandleEvent implements PenBehaviour.
func (s *Selector) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	switch ev := event.(type) {
	case ink.DownEvent:
		return ink.Consumed(ink.ProgressInProgress), s.down(ev.Element.Pos, view)
	case ink.UpEvent:
		return s.up(ev.Element.Pos, now, view)
	case ink.KeyPressedEvent:
		return s.keyPressed(ev, now, view)
	case ink.CancelEvent:
		state := s.state
		var flags ink.WidgetFlags
		if state == selectorTranslating {
			flags.Merge(view.finishGesture(view.Store.SelectedKeys(), now, false))
		}
		s.state = selectorIdle
		if state == selectorIdle {
			deselected := deselectAll(view)
			if deselected.IsEmpty() {
				return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
			}
			flags.Merge(deselected)
		}
		flags.Redraw = true
		return ink.Consumed(ink.ProgressFinished), flags
	}
	return ink.Unhandled(progressOf(s.state != selectorIdle)), ink.WidgetFlags{}
}

func (s *Selector) down(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	var flags ink.WidgetFlags
	switch s.state {
	case selectorIdle:
		s.start, s.current = pos, pos
		if b, ok := view.Store.BoundsForStrokes(view.Store.SelectedKeys()); ok && b.Contains(pos) {
			s.state = selectorTranslating
			return ink.WidgetFlags{}
		}
		flags.Merge(deselectAll(view))
		s.state = selectorSelecting
	case selectorSelecting:
		s.current = pos
		flags.Merge(view.nudgeAndExpand(pos))
	case selectorTranslating:
		offset := pos.Sub(s.current)
		s.current = pos
		selected := view.Store.SelectedKeys()
		flags.Merge(view.Store.TranslateStrokes(selected, offset))
		flags.Merge(view.Store.TranslateStrokesImages(selected, offset))
		flags.Merge(view.nudgeAndExpand(pos))
	}
	flags.Redraw = true
	return flags
}

func (s *Selector) up(pos ink.Point, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	var flags ink.WidgetFlags
	switch s.state {
	case selectorIdle:
		return ink.Unhandled(ink.ProgressIdle), flags
	case selectorSelecting:
		s.current = pos
		flags.Merge(view.Store.SetSelected(s.pick(view), true))
	case selectorTranslating:
		flags.Merge(s.down(pos, view))
		flags.Merge(view.finishGesture(view.Store.SelectedKeys(), now, true))
	}
	s.state = selectorIdle
	flags.Redraw = true
	flags.RefreshUI = true
	return ink.Consumed(ink.ProgressFinished), flags
}

// pick returns the strokes fully inside the rubber band, or the topmost
// stroke under the pointer when the band is too small.
func (s *Selector) pick(view *EngineViewMut) []ink.StrokeKey {
	band := ink.NewAabb(s.start, s.current)
	minSize := view.Config.Selector.MinSelectionSize
	if band.Width() < minSize && band.Height() < minSize {
		if keys := view.Store.KeysAtPos(s.current); len(keys) > 0 {
			return keys[:1]
		}
		return nil
	}
	var picked []ink.StrokeKey
	for _, key := range view.Store.KeysIntersectingBounds(band) {
		if b, ok := view.Store.BoundsForStrokes([]ink.StrokeKey{key}); ok && band.ContainsAabb(b) {
			picked = append(picked, key)
		}
	}
	return picked
}

func (s *Selector) keyPressed(ev ink.KeyPressedEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	if s.state != selectorIdle {
		return ink.Unhandled(ink.ProgressInProgress), ink.WidgetFlags{}
	}
	switch {
	case ev.Key == ink.KeyDelete || ev.Key == ink.KeyBackSpace:
		selected := view.Store.SelectedKeys()
		if len(selected) == 0 {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		flags := view.Store.SetTrashed(selected, true)
		flags.Merge(view.finishGesture(nil, now, true))
		return ink.Consumed(ink.ProgressFinished), flags
	case ev.Key == ink.KeyEscape:
		return ink.Consumed(ink.ProgressFinished), deselectAll(view)
	case ev.Key == ink.KeyUnicode && ev.Shortcuts.Has(ink.ShortcutKeyboardCtrl) && unicode.ToLower(ev.Rune) == 'a':
		flags := view.Store.SetSelected(view.Store.Keys(), true)
		flags.RefreshUI = true
		return ink.Consumed(ink.ProgressFinished), flags
	}
	return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
}

func deselectAll(view *EngineViewMut) ink.WidgetFlags {
	flags := view.Store.SetSelected(view.Store.SelectedKeys(), false)
	if !flags.IsEmpty() {
		flags.RefreshUI = true
	}
	return flags
}

// Bounds implements PenBehaviour.
func (s *Selector) Bounds(view *EngineView) (ink.Aabb, bool) {
	if s.state == selectorSelecting {
		return ink.NewAabb(s.start, s.current), true
	}
	return view.Store.BoundsForStrokes(view.Store.SelectedKeys())
}

// DrawOverlay outlines the rubber band.
func (s *Selector) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if s.state == selectorSelecting {
		c.StrokeRect(ink.NewAabb(s.start, s.current), render.SelectionColor, 1)
	}
	return nil
}
