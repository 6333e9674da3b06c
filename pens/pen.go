package pens

import (
	"context"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/stroke"
)

// PenBehaviour is implemented by every pen.
type PenBehaviour interface {
	// Init is called when the pen becomes active.
	Init(now time.Time, view *EngineViewMut) ink.WidgetFlags
	// Deinit is called before another pen becomes active. Pending gestures
	// are finished.
	Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags
	// Style returns the pen style.
	Style() PenStyle
	// UpdateState applies config changes to an active pen.
	UpdateState(view *EngineViewMut) ink.WidgetFlags
	// HandleEvent advances the pen state machine.
	HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags)
	// Bounds returns the area the pen draws its overlay into, if any.
	Bounds(view *EngineView) (ink.Aabb, bool)
}

// Drawer is implemented by pens that draw feedback on top of the strokes,
// such as a stroke in progress or a selection rubber band.
type Drawer interface {
	DrawOverlay(c *render.Canvas, view *EngineView) error
}

// Blinker is implemented by pens with a blinking cursor.
type Blinker interface {
	Blink(view *EngineViewMut) ink.WidgetFlags
}

// newPen creates the pen for style.
func newPen(style PenStyle) PenBehaviour {
	switch style {
	case StyleShaper:
		return NewShaper()
	case StyleTypewriter:
		return NewTypewriter()
	case StyleEraser:
		return NewEraser()
	case StyleSelector:
		return NewSelector()
	case StyleTools:
		return NewTools()
	default:
		return NewBrush()
	}
}

// drawStrokeNow rasterizes a stroke synchronously onto the canvas.
func drawStrokeNow(c *render.Canvas, s stroke.Stroke, view *EngineView) error {
	images, err := render.GenImages(context.Background(), s, view.Camera.Viewport(), view.Camera.ImageScale())
	if err != nil {
		return err
	}
	c.DrawImages(images)
	return nil
}

// Motion estimates the pointer speed in document units per second with
// exponential smoothing.
type Motion struct {
	last     ink.Point
	lastTime time.Time
	speed    float64
	valid    bool
}

// MotionSpeedCap limits the estimated speed.
const MotionSpeedCap = 5000.0

// motionSmoothing weighs the previous estimate against a new sample.
const motionSmoothing = 3.0

// Update feeds a new pointer sample.
func (m *Motion) Update(pos ink.Point, now time.Time) {
	if m.valid {
		if dt := now.Sub(m.lastTime).Seconds(); dt > 0 {
			instant := pos.Distance(m.last) / dt
			m.speed = min(MotionSpeedCap, (m.speed*motionSmoothing+instant)/(motionSmoothing+1))
		}
	}
	m.last, m.lastTime, m.valid = pos, now, true
}

// Speed returns the smoothed speed.
func (m *Motion) Speed() float64 { return m.speed }

// Reset forgets all samples.
func (m *Motion) Reset() { *m = Motion{} }
