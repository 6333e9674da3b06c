package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

// Holder owns the current pen and dispatches events to it. A style override
// (for example while the secondary stylus button is held) lasts until the
// gesture finishes.
type Holder struct {
	style    PenStyle
	override *PenStyle
	current  PenBehaviour
	progress ink.PenProgress
}

// NewHolder creates a holder with the brush active.
func NewHolder() *Holder {
	return &Holder{style: StyleBrush, current: NewBrush()}
}

// Style returns the style picked by the user.
func (h *Holder) Style() PenStyle { return h.style }

// Override returns the active style override, if any.
func (h *Holder) Override() (PenStyle, bool) {
	if h.override == nil {
		return 0, false
	}
	return *h.override, true
}

// CurrentStyle returns the style of the active pen.
func (h *Holder) CurrentStyle() PenStyle { return h.current.Style() }

// Current returns the active pen.
func (h *Holder) Current() PenBehaviour { return h.current }

// Progress returns the progress of the last handled event.
func (h *Holder) Progress() ink.PenProgress { return h.progress }

// ChangeStyle switches the user picked style. The active pen is replaced
// unless an override is in effect.
func (h *Holder) ChangeStyle(style PenStyle, now time.Time, view *EngineViewMut) ink.WidgetFlags {
	if h.style == style {
		return ink.WidgetFlags{}
	}
	h.style = style
	flags := ink.WidgetFlags{RefreshUI: true}
	if h.override == nil {
		flags.Merge(h.reinstall(style, now, view))
	}
	return flags
}

// SetOverride activates a temporary style, or removes it for nil.
func (h *Holder) SetOverride(style *PenStyle, now time.Time, view *EngineViewMut) ink.WidgetFlags {
	h.override = style
	target := h.style
	if style != nil {
		target = *style
	}
	return h.reinstall(target, now, view)
}

func (h *Holder) reinstall(style PenStyle, now time.Time, view *EngineViewMut) ink.WidgetFlags {
	if h.current.Style() == style {
		return ink.WidgetFlags{}
	}
	ink.Logger().Debug("switching pen", "from", h.current.Style(), "to", style)
	flags := h.current.Deinit(now, view)
	h.current = newPen(style)
	h.progress = ink.ProgressIdle
	flags.Merge(h.current.Init(now, view))
	flags.Redraw = true
	flags.RefreshUI = true
	return flags
}

// Init initializes the active pen. It must be called once before events are
// handled.
func (h *Holder) Init(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	return h.current.Init(now, view)
}

// Deinit finishes the active gesture.
func (h *Holder) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	return h.current.Deinit(now, view)
}

// HandleEvent forwards event to the active pen. A press with the secondary
// stylus button held switches to the configured pen until the gesture
// finishes.
func (h *Holder) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	var flags ink.WidgetFlags
	if down, ok := event.(ink.DownEvent); ok && h.progress != ink.ProgressInProgress {
		if down.Shortcuts.Has(ink.ShortcutStylusSecondaryButton) {
			style := view.Config.StylusSecondaryButton
			flags.Merge(h.SetOverride(&style, now, view))
		}
	}

	result, penFlags := h.current.HandleEvent(event, now, view)
	flags.Merge(penFlags)
	h.progress = result.Progress

	if h.override != nil && result.Progress == ink.ProgressFinished {
		flags.Merge(h.SetOverride(nil, now, view))
	}
	return result, flags
}

// UpdateState forwards config changes to the active pen.
func (h *Holder) UpdateState(view *EngineViewMut) ink.WidgetFlags {
	return h.current.UpdateState(view)
}

// HandleBlink forwards a cursor blink to pens that have a cursor.
func (h *Holder) HandleBlink(view *EngineViewMut) ink.WidgetFlags {
	if b, ok := h.current.(Blinker); ok {
		return b.Blink(view)
	}
	return ink.WidgetFlags{}
}

// Bounds returns the overlay area of the active pen.
func (h *Holder) Bounds(view *EngineView) (ink.Aabb, bool) {
	return h.current.Bounds(view)
}

// DrawOverlay draws the feedback of the active pen.
func (h *Holder) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if d, ok := h.current.(Drawer); ok {
		return d.DrawOverlay(c, view)
	}
	return nil
}
