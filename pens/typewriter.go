package pens

import (
	"math"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/stroke"
)

// Typewriter creates and edits text strokes. The stroke being edited lives
// in the store, so its rendering is regenerated like any other stroke.
type Typewriter struct {
	key     ink.StrokeKey
	editing bool
	cursor  int

	cursorVisible bool
	blink         *ink.PeriodicTask
}

// NewTypewriter creates a typewriter that is not editing.
func NewTypewriter() *Typewriter { return &Typewriter{} }

// Init implements PenBehaviour. It starts the cursor blink task.
func (t *Typewriter) Init(_ time.Time, view *EngineViewMut) ink.WidgetFlags {
	t.stopBlink()
	sender := view.Tasks
	t.blink = ink.NewPeriodicTask(func() {
		sender.Send(ink.BlinkTypewriterCursorTask{})
	}, view.Config.Typewriter.BlinkInterval())
	return ink.WidgetFlags{}
}

// Deinit implements PenBehaviour. The text being edited is committed.
func (t *Typewriter) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	t.stopBlink()
	if !t.editing {
		return ink.WidgetFlags{}
	}
	return t.finish(now, view)
}

func (t *Typewriter) stopBlink() {
	if t.blink != nil {
		t.blink.Quit()
		t.blink = nil
	}
}

// Style implements PenBehaviour.
func (t *Typewriter) Style() PenStyle { return StyleTypewriter }

// UpdateState implements PenBehaviour. A changed text style applies to the
// text being edited.
func (t *Typewriter) UpdateState(view *EngineViewMut) ink.WidgetFlags {
	ts, ok := t.text(view.AsImm())
	if !ok {
		return ink.WidgetFlags{}
	}
	ts.Style = view.Config.Typewriter.TextStyle
	return t.edited(view)
}

// Blink toggles the cursor visibility.
func (t *Typewriter) Blink(*EngineViewMut) ink.WidgetFlags {
	if !t.editing {
		return ink.WidgetFlags{}
	}
	t.cursorVisible = !t.cursorVisible
	return ink.WidgetFlags{Redraw: true}
}

// Editing reports whether a text stroke is being edited, and which.
func (t *Typewriter) Editing() (ink.StrokeKey, bool) { return t.key, t.editing }

// Cursor returns the rune index of the cursor.
func (t *Typewriter) Cursor() int { return t.cursor }

// HandleEvent implements PenBehaviour.
func (t *Typewriter) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	switch ev := event.(type) {
	case ink.DownEvent:
		return ink.Consumed(ink.ProgressInProgress), t.down(ev.Element.Pos, now, view)
	case ink.UpEvent:
		if !t.editing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		return ink.Consumed(ink.ProgressInProgress), ink.WidgetFlags{}
	case ink.TextEvent:
		if !t.editing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		return ink.Consumed(ink.ProgressInProgress), t.insert(ev.Text, view)
	case ink.KeyPressedEvent:
		if !t.editing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		if ev.Key == ink.KeyEscape {
			return ink.Consumed(ink.ProgressFinished), t.finish(now, view)
		}
		flags, handled := t.keyPressed(ev, view)
		if !handled {
			return ink.Unhandled(ink.ProgressInProgress), flags
		}
		return ink.Consumed(ink.ProgressInProgress), flags
	case ink.CancelEvent:
		if !t.editing {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		return ink.Consumed(ink.ProgressFinished), t.finish(now, view)
	}
	return ink.Unhandled(progressOf(t.editing)), ink.WidgetFlags{}
}

func (t *Typewriter) down(pos ink.Point, now time.Time, view *EngineViewMut) ink.WidgetFlags {
	var flags ink.WidgetFlags
	if ts, ok := t.text(view.AsImm()); ok {
		if ts.Bounds().Contains(pos) {
			t.cursor = cursorAt(ts, pos)
			t.cursorVisible = true
			return ink.WidgetFlags{Redraw: true}
		}
		flags.Merge(t.finish(now, view))
	}

	for _, key := range view.Store.KeysAtPos(pos) {
		s, err := view.Store.Stroke(key)
		if err != nil {
			continue
		}
		if ts, ok := s.(*stroke.TextStroke); ok {
			t.key, t.editing = key, true
			t.cursor = cursorAt(ts, pos)
			t.cursorVisible = true
			flags.Redraw = true
			return flags
		}
	}

	ts := stroke.NewTextStroke("", pos, view.Config.Typewriter.TextStyle)
	t.key = view.Store.InsertStroke(ts)
	t.editing = true
	t.cursor = 0
	t.cursorVisible = true
	flags.Merge(ink.StoreChanged())
	return flags
}

func (t *Typewriter) insert(text string, view *EngineViewMut) ink.WidgetFlags {
	ts, ok := t.text(view.AsImm())
	if !ok || text == "" {
		return ink.WidgetFlags{}
	}
	t.cursor = ts.InsertText(t.cursor, text)
	return t.edited(view)
}

func (t *Typewriter) keyPressed(ev ink.KeyPressedEvent, view *EngineViewMut) (ink.WidgetFlags, bool) {
	ts, ok := t.text(view.AsImm())
	if !ok {
		return ink.WidgetFlags{}, false
	}
	l := ts.Layout()
	switch ev.Key {
	case ink.KeyUnicode:
		if ev.Shortcuts.Has(ink.ShortcutKeyboardCtrl) || ev.Shortcuts.Has(ink.ShortcutKeyboardAlt) {
			return ink.WidgetFlags{}, false
		}
		return t.insert(string(ev.Rune), view), true
	case ink.KeyEnter:
		return t.insert("\n", view), true
	case ink.KeyTab:
		return t.insert("\t", view), true
	case ink.KeyBackSpace:
		t.cursor = ts.RemoveBefore(t.cursor)
		return t.edited(view), true
	case ink.KeyDelete:
		t.cursor = ts.RemoveAfter(t.cursor)
		return t.edited(view), true
	case ink.KeyArrowLeft:
		t.cursor = max(t.cursor-1, 0)
	case ink.KeyArrowRight:
		t.cursor = min(t.cursor+1, ts.RuneCount())
	case ink.KeyArrowUp, ink.KeyArrowDown:
		caret := l.CaretPosition(t.cursor)
		dy := -l.LineHeight / 2
		if ev.Key == ink.KeyArrowDown {
			dy = l.LineHeight * 1.5
		}
		t.cursor = cursorAt(ts, ts.Pos.Add(ink.Pt(caret.X, caret.Y+dy)))
	case ink.KeyHome, ink.KeyEnd:
		line := lineOf(l, t.cursor)
		if ev.Key == ink.KeyHome {
			t.cursor = line.Start
		} else {
			t.cursor = line.End
		}
	default:
		return ink.WidgetFlags{}, false
	}
	t.cursorVisible = true
	return ink.WidgetFlags{Redraw: true}, true
}

// edited refreshes the store after the text was changed in place.
func (t *Typewriter) edited(view *EngineViewMut) ink.WidgetFlags {
	keys := []ink.StrokeKey{t.key}
	flags := view.Store.UpdateGeometryForStrokes(keys)
	view.regenerateStrokes(keys)
	t.cursorVisible = true
	if ts, ok := t.text(view.AsImm()); ok {
		flags.Merge(view.nudgeAndExpand(ts.CaretBounds(t.cursor).Center()))
	}
	return flags
}

// finish commits the text. Empty texts are removed without a history step.
func (t *Typewriter) finish(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	var flags ink.WidgetFlags
	if ts, ok := t.text(view.AsImm()); ok && ts.Text == "" {
		if _, err := view.Store.RemoveStroke(t.key); err != nil {
			ink.Logger().Warn("typewriter: removing empty text", "key", t.key, "err", err)
		}
		flags = ink.StoreChanged()
	} else {
		flags = view.finishGesture([]ink.StrokeKey{t.key}, now, true)
	}
	t.key, t.editing, t.cursor = 0, false, 0
	t.cursorVisible = false
	flags.Redraw = true
	return flags
}

func (t *Typewriter) text(view *EngineView) (*stroke.TextStroke, bool) {
	if !t.editing {
		return nil, false
	}
	s, err := view.Store.Stroke(t.key)
	if err != nil {
		return nil, false
	}
	ts, ok := s.(*stroke.TextStroke)
	return ts, ok
}

// cursorAt returns the rune index closest to the document position pos.
func cursorAt(ts *stroke.TextStroke, pos ink.Point) int {
	l := ts.Layout()
	if len(l.Lines) == 0 || l.LineHeight <= 0 {
		return 0
	}
	rel := pos.Sub(ts.Pos)
	row := int(math.Floor(rel.Y / l.LineHeight))
	row = min(max(row, 0), len(l.Lines)-1)
	line := l.Lines[row]

	best, bestDist := line.Start, math.Inf(1)
	for i, x := range line.Offsets {
		if d := math.Abs(x - rel.X); d < bestDist {
			best, bestDist = line.Start+i, d
		}
	}
	return best
}

func lineOf(l stroke.TextLayout, cursor int) stroke.TextLine {
	for _, line := range l.Lines {
		if cursor >= line.Start && cursor <= line.End {
			return line
		}
	}
	if len(l.Lines) == 0 {
		return stroke.TextLine{}
	}
	return l.Lines[len(l.Lines)-1]
}

// Bounds implements PenBehaviour.
func (t *Typewriter) Bounds(view *EngineView) (ink.Aabb, bool) {
	ts, ok := t.text(view)
	if !ok {
		return ink.Aabb{}, false
	}
	return ts.Bounds().Merged(ts.CaretBounds(t.cursor)), true
}

// DrawOverlay draws the text frame and the cursor.
func (t *Typewriter) DrawOverlay(c *render.Canvas, view *EngineView) error {
	ts, ok := t.text(view)
	if !ok {
		return nil
	}
	c.StrokeRect(ts.Bounds().Loosened(2), render.SelectionColor, 1)
	if t.cursorVisible {
		c.FillRect(ts.CaretBounds(t.cursor), ts.Style.Color)
	}
	return nil
}
