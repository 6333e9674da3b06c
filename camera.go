package ink

import (
	"errors"
	"math"
	"time"
)

// Camera limits and tuning constants.
const (
	ZoomMin     = 0.2
	ZoomMax     = 6.0
	ZoomDefault = 1.0

	// OvershootHorizontal and OvershootVertical are the surface-space margins
	// the viewport may scroll past the document edges.
	OvershootHorizontal = 96.0
	OvershootVertical   = 96.0

	// ZoomTimeout is how long a temporary zoom settles before it is
	// committed as the permanent zoom.
	ZoomTimeout = 300 * time.Millisecond

	// NudgeViewportDist is the surface-space distance to a viewport edge
	// below which drag operations scroll the camera.
	NudgeViewportDist = 10.0
	// NudgeStep is the surface-space distance one nudge scrolls.
	NudgeStep = 20.0
)

// NudgeDirection is one of the eight compass directions the camera can be
// nudged in.
type NudgeDirection int

const (
	NudgeNorth NudgeDirection = iota
	NudgeNorthEast
	NudgeEast
	NudgeSouthEast
	NudgeSouth
	NudgeSouthWest
	NudgeWest
	NudgeNorthWest
)

var nudgeNames = [...]string{"north", "north-east", "east", "south-east", "south", "south-west", "west", "north-west"}

func (d NudgeDirection) String() string {
	if d < 0 || int(d) >= len(nudgeNames) {
		return "unknown"
	}
	return nudgeNames[d]
}

// Vector returns the unit step of the direction in surface space.
func (d NudgeDirection) Vector() Point {
	switch d {
	case NudgeNorth:
		return Pt(0, -1)
	case NudgeNorthEast:
		return Pt(1, -1)
	case NudgeEast:
		return Pt(1, 0)
	case NudgeSouthEast:
		return Pt(1, 1)
	case NudgeSouth:
		return Pt(0, 1)
	case NudgeSouthWest:
		return Pt(-1, 1)
	case NudgeWest:
		return Pt(-1, 0)
	case NudgeNorthWest:
		return Pt(-1, -1)
	}
	return Point{}
}

// Camera owns the viewport: offset and size in surface space, the permanent
// zoom and a temporary zoom overlay. Only the total zoom (zoom * temporary
// zoom) is ever applied to transforms.
type Camera struct {
	offset        Point
	size          Point
	zoom          float64
	temporaryZoom float64
	scaleFactor   float64

	// zoomTask is the single in-flight zoom-settle debounce.
	zoomTask    *OneOffTask
	zoomTimeout time.Duration
}

// NewCamera creates a camera at the origin with default zoom.
func NewCamera() *Camera {
	return &Camera{
		size:          Pt(800, 600),
		zoom:          ZoomDefault,
		temporaryZoom: 1,
		scaleFactor:   1,
		zoomTimeout:   ZoomTimeout,
	}
}

// Offset returns the viewport offset in surface space.
func (c *Camera) Offset() Point { return c.offset }

// Size returns the viewport size in surface space.
func (c *Camera) Size() Point { return c.size }

// Zoom returns the permanent zoom.
func (c *Camera) Zoom() float64 { return c.zoom }

// TemporaryZoom returns the temporary zoom overlay factor.
func (c *Camera) TemporaryZoom() float64 { return c.temporaryZoom }

// TotalZoom returns the zoom applied to transforms.
func (c *Camera) TotalZoom() float64 { return c.zoom * c.temporaryZoom }

// ScaleFactor returns the device pixel ratio.
func (c *Camera) ScaleFactor() float64 { return c.scaleFactor }

// ImageScale is the scale stroke images are rendered at for this camera.
func (c *Camera) ImageScale() float64 { return c.TotalZoom() * c.scaleFactor }

// SetScaleFactor sets the device pixel ratio.
func (c *Camera) SetScaleFactor(scaleFactor float64) WidgetFlags {
	if scaleFactor <= 0 || scaleFactor == c.scaleFactor {
		return WidgetFlags{}
	}
	c.scaleFactor = scaleFactor
	return WidgetFlags{Redraw: true, ViewModified: true}
}

// SetOffset moves the viewport, clamped to the bounds the document layout
// allows.
func (c *Camera) SetOffset(offset Point, doc *Document) WidgetFlags {
	lower, upper := c.OffsetLowerUpper(doc)
	c.offset = offset.Clamp(lower, upper)
	return WidgetFlags{Redraw: true, ViewModified: true}
}

// SetSize resizes the viewport and re-clamps the offset.
func (c *Camera) SetSize(size Point, doc *Document) WidgetFlags {
	c.size = size.Max(Point{})
	return c.SetOffset(c.offset, doc)
}

// ZoomTo sets the permanent zoom, clamped into [ZoomMin, ZoomMax], and resets
// the temporary zoom.
func (c *Camera) ZoomTo(zoom float64) WidgetFlags {
	if math.IsNaN(zoom) {
		return WidgetFlags{}
	}
	c.zoom = clampFloat(zoom, ZoomMin, ZoomMax)
	c.temporaryZoom = 1
	return WidgetFlags{Redraw: true, Zoomed: true, ViewModified: true}
}

// ZoomAt zooms permanently while keeping the document point under the
// surface position centre in place.
func (c *Camera) ZoomAt(zoom float64, centre Point, doc *Document) WidgetFlags {
	docPos := c.TransformInv().TransformPoint(centre)
	flags := c.ZoomTo(zoom)
	tz := c.TotalZoom()
	flags.Merge(c.SetOffset(docPos.Mul(tz).Sub(centre), doc))
	return flags
}

// ZoomAtCenter zooms around the centre of the viewport.
func (c *Camera) ZoomAtCenter(zoom float64, doc *Document) WidgetFlags {
	return c.ZoomAt(zoom, c.size.Mul(0.5), doc)
}

// ZoomTemporarilyTo sets the temporary zoom overlay. It is clamped relative
// to the permanent zoom so that the total zoom stays within range.
func (c *Camera) ZoomTemporarilyTo(temporaryZoom float64) WidgetFlags {
	if math.IsNaN(temporaryZoom) {
		return WidgetFlags{}
	}
	c.temporaryZoom = clampFloat(temporaryZoom, ZoomMin/c.zoom, ZoomMax/c.zoom)
	return WidgetFlags{Redraw: true, ZoomedTemporarily: true, ViewModified: true}
}

// ZoomWithTimeout applies zoom as a temporary zoom immediately and commits it
// as a ZoomTask after the zoom timeout. Calling it again before the timeout
// replaces the pending commit; the last value wins.
func (c *Camera) ZoomWithTimeout(zoom float64, sender TaskSender) WidgetFlags {
	zoom = clampFloat(zoom, ZoomMin, ZoomMax)
	flags := c.ZoomTemporarilyTo(zoom / c.zoom)

	commit := func() { sender.Send(ZoomTask{Zoom: zoom}) }
	reinstall := true
	if c.zoomTask != nil {
		err := c.zoomTask.Replace(commit)
		switch {
		case err == nil:
			reinstall = false
		case errors.Is(err, ErrTimeoutReached):
			Logger().Debug("zoom task already fired, installing a new one", "zoom", zoom)
		default:
			Logger().Warn("replacing zoom task failed", "err", err)
		}
	}
	if reinstall {
		c.zoomTask = NewOneOffTask(commit, c.zoomTimeout)
	}
	return flags
}

// Close cancels a pending zoom commit.
func (c *Camera) Close() {
	if c.zoomTask != nil {
		c.zoomTask.Quit()
		c.zoomTask = nil
	}
}

// Viewport returns the visible area in document space.
func (c *Camera) Viewport() Aabb {
	tz := c.TotalZoom()
	return NewAabb(c.offset.Div(tz), c.offset.Add(c.size).Div(tz))
}

// Transform maps document space to surface space.
func (c *Camera) Transform() Matrix {
	tz := c.TotalZoom()
	return Translate(-c.offset.X, -c.offset.Y).Multiply(Scale(tz, tz))
}

// TransformForScale maps document space to device pixels for a surface
// with the given scale factor.
func (c *Camera) TransformForScale(scaleFactor float64) Matrix {
	return Scale(scaleFactor, scaleFactor).Multiply(c.Transform())
}

// TransformInv maps surface space to document space.
func (c *Camera) TransformInv() Matrix {
	return c.Transform().Invert()
}

// OffsetLowerUpper returns the legal offset range for the document layout.
// Page layouts clamp with an overshoot margin on both edges (and centre the
// document horizontally when it is narrower than the viewport), the
// semi-infinite layout only overshoots the leading edges and the infinite
// layout is unbounded.
func (c *Camera) OffsetLowerUpper(doc *Document) (lower, upper Point) {
	tz := c.TotalZoom()
	b := doc.Bounds().Scale(tz)

	switch doc.Config.Layout {
	case LayoutFixedSize, LayoutContinuousVertical:
		if b.Width()+2*OvershootHorizontal <= c.size.X {
			centered := b.Min.X + b.Width()/2 - c.size.X/2
			lower.X, upper.X = centered, centered
		} else {
			lower.X = b.Min.X - OvershootHorizontal
			upper.X = b.Max.X - c.size.X + OvershootHorizontal
		}
		lower.Y = b.Min.Y - OvershootVertical
		upper.Y = b.Max.Y - c.size.Y + OvershootVertical
	case LayoutSemiInfinite:
		lower = b.Min.Sub(Pt(OvershootHorizontal, OvershootVertical))
		upper = b.Max.Sub(c.size)
	case LayoutInfinite:
		inf := math.Inf(1)
		return Pt(-inf, -inf), Pt(inf, inf)
	}
	return lower, upper.Max(lower)
}

// DetectNudgeNeeded reports the direction to scroll when the document-space
// position pos is close to a viewport edge. Diagonals win when two adjacent
// edges are close at the same time.
func (c *Camera) DetectNudgeNeeded(pos Point) (NudgeDirection, bool) {
	vp := c.Viewport()
	dist := NudgeViewportDist / c.TotalZoom()

	north := pos.Y <= vp.Min.Y+dist
	east := pos.X >= vp.Max.X-dist
	south := pos.Y >= vp.Max.Y-dist
	west := pos.X <= vp.Min.X+dist

	switch {
	case north && east:
		return NudgeNorthEast, true
	case east && south:
		return NudgeSouthEast, true
	case south && west:
		return NudgeSouthWest, true
	case west && north:
		return NudgeNorthWest, true
	case north:
		return NudgeNorth, true
	case east:
		return NudgeEast, true
	case south:
		return NudgeSouth, true
	case west:
		return NudgeWest, true
	}
	return 0, false
}

// Nudge scrolls the viewport one step in the given direction.
func (c *Camera) Nudge(dir NudgeDirection, doc *Document) WidgetFlags {
	flags := c.SetOffset(c.offset.Add(dir.Vector().Mul(NudgeStep)), doc)
	flags.UpdateView = true
	return flags
}

// NudgeWithPos nudges the camera if pos is close to a viewport edge.
func (c *Camera) NudgeWithPos(pos Point, doc *Document) WidgetFlags {
	dir, ok := c.DetectNudgeNeeded(pos)
	if !ok {
		return WidgetFlags{}
	}
	return c.Nudge(dir, doc)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
