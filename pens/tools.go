package pens

import (
	"math"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

// verticalSpaceMinOffset is the smallest offset strokes are moved by.
const verticalSpaceMinOffset = 0.1

// Tools is the pen for tools that do not draw: inserting vertical space,
// panning and zooming. The tool is picked from the config when a gesture
// starts and kept until it ends.
type Tools struct {
	active bool
	style  ToolStyle

	verticalSpace verticalSpace
	offsetCamera  offsetCamera
	zoom          zoomDrag
}

// verticalSpace moves every stroke below the press point.
type verticalSpace struct {
	startPosY float64
	posY      float64
	// limitY is the end of the page the press happened on.
	limitY        float64
	limitX        [2]float64
	limitVertical bool
	strokesBelow  []ink.StrokeKey
}

// offsetCamera keeps the document point under the pointer fixed.
type offsetCamera struct {
	start ink.Point
}

// zoomDrag zooms around the press point.
type zoomDrag struct {
	startZoom     float64
	anchor        ink.Point
	anchorSurface ink.Point
}

// NewTools creates an idle tools pen.
func NewTools() *Tools { return &Tools{} }

// Init implements PenBehaviour.
func (t *Tools) Init(time.Time, *EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{} }

// Deinit implements PenBehaviour.
func (t *Tools) Deinit(now time.Time, view *EngineViewMut) ink.WidgetFlags {
	_, flags := t.HandleEvent(ink.CancelEvent{}, now, view)
	return flags
}

// Style implements PenBehaviour.
func (t *Tools) Style() PenStyle { return StyleTools }

// UpdateState implements PenBehaviour.
func (t *Tools) UpdateState(*EngineViewMut) ink.WidgetFlags { return ink.WidgetFlags{Redraw: true} }

// HandleEvent implements PenBehaviour.
func (t *Tools) HandleEvent(event ink.PenEvent, now time.Time, view *EngineViewMut) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	switch ev := event.(type) {
	case ink.DownEvent:
		if !t.active {
			t.active = true
			t.style = view.Config.Tools.Style
			return ink.Consumed(ink.ProgressInProgress), t.start(ev.Element.Pos, view)
		}
		return ink.Consumed(ink.ProgressInProgress), t.drag(ev.Element.Pos, view)
	case ink.UpEvent:
		if !t.active {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		flags := t.drag(ev.Element.Pos, view)
		flags.Merge(t.finish(now, view, true))
		return ink.Consumed(ink.ProgressFinished), flags
	case ink.CancelEvent:
		if !t.active {
			return ink.Unhandled(ink.ProgressIdle), ink.WidgetFlags{}
		}
		return ink.Consumed(ink.ProgressFinished), t.finish(now, view, false)
	}
	return ink.Unhandled(progressOf(t.active)), ink.WidgetFlags{}
}

func (t *Tools) start(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	switch t.style {
	case ToolOffsetCamera:
		t.offsetCamera = offsetCamera{start: pos}
		return ink.WidgetFlags{}
	case ToolZoom:
		t.zoom = zoomDrag{
			startZoom:     view.Camera.TotalZoom(),
			anchor:        pos,
			anchorSurface: view.Camera.Transform().TransformPoint(pos),
		}
		return ink.WidgetFlags{}
	default:
		return t.verticalSpace.start(pos, view)
	}
}

func (t *Tools) drag(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	switch t.style {
	case ToolOffsetCamera:
		tz := view.Camera.TotalZoom()
		offset := view.Camera.Offset().Add(t.offsetCamera.start.Sub(pos).Mul(tz))
		flags := view.Camera.SetOffset(offset, view.Document)
		flags.UpdateView = true
		flags.Merge(view.Document.ExpandAutoexpand(view.Camera, view.Store))
		return flags
	case ToolZoom:
		return t.zoom.drag(pos, view)
	default:
		return t.verticalSpace.drag(pos, view)
	}
}

func (t *Tools) finish(now time.Time, view *EngineViewMut, commit bool) ink.WidgetFlags {
	var flags ink.WidgetFlags
	switch t.style {
	case ToolOffsetCamera, ToolZoom:
		view.regenerateViewport(false)
	default:
		flags = view.finishGesture(t.verticalSpace.strokesBelow, now, commit)
		t.verticalSpace = verticalSpace{}
	}
	t.active = false
	flags.Redraw = true
	return flags
}

func (v *verticalSpace) start(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	cfg := view.Config.Tools
	doc := view.Document
	format := doc.Config.Format
	paged := doc.Config.Layout == ink.LayoutFixedSize || doc.Config.Layout == ink.LayoutContinuousVertical

	v.startPosY = pos.Y
	v.posY = pos.Y
	v.limitY = math.Inf(1)
	if format.Height > 0 {
		v.limitY = (math.Floor(pos.Y/format.Height) + 1) * format.Height
	}
	v.limitX = [2]float64{math.Inf(-1), math.Inf(1)}
	if format.Width > 0 {
		column := math.Floor(pos.X / format.Width)
		v.limitX = [2]float64{column * format.Width, (column + 1) * format.Width}
	}
	v.limitVertical = cfg.VerticalSpaceLimitY && doc.Config.Layout == ink.LayoutFixedSize
	limitHorizontal := cfg.VerticalSpaceLimitX && paged

	v.strokesBelow = view.Store.KeysBetween(pos.Y, v.limitY, v.limitX, v.limitVertical, limitHorizontal)
	ink.Logger().Debug("vertical space started", "y", pos.Y, "strokes", len(v.strokesBelow))
	return doc.ResizeAutoexpand(view.Store, view.Camera)
}

func (v *verticalSpace) drag(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	target := view.Document.SnapPosition(pos).Y
	if math.Abs(pos.Y-v.startPosY) < view.Config.Tools.VerticalSpaceSnap {
		target = v.startPosY
	}
	offset := target - v.posY

	if v.limitVertical {
		if b, ok := view.Store.BoundsForStrokes(v.strokesBelow); ok && b.Max.Y+offset > v.limitY {
			offset = v.limitY - b.Max.Y
		}
	}
	if math.Abs(offset) <= verticalSpaceMinOffset {
		return ink.WidgetFlags{}
	}

	move := ink.Pt(0, offset)
	flags := view.Store.TranslateStrokes(v.strokesBelow, move)
	flags.Merge(view.Store.TranslateStrokesImages(v.strokesBelow, move))
	v.posY += offset
	flags.Merge(view.nudgeAndExpand(pos))
	return flags
}

func (z *zoomDrag) drag(pos ink.Point, view *EngineViewMut) ink.WidgetFlags {
	sensitivity := view.Config.Tools.ZoomDragSensitivity
	if sensitivity <= 0 {
		sensitivity = DefaultConfig().Tools.ZoomDragSensitivity
	}
	surface := view.Camera.Transform().TransformPoint(pos)
	dy := surface.Y - z.anchorSurface.Y

	flags := view.Camera.ZoomWithTimeout(z.startZoom*math.Exp(-dy/sensitivity), view.Tasks)
	tz := view.Camera.TotalZoom()
	flags.Merge(view.Camera.SetOffset(z.anchor.Mul(tz).Sub(z.anchorSurface), view.Document))
	flags.UpdateView = true
	return flags
}

// Bounds implements PenBehaviour.
func (t *Tools) Bounds(view *EngineView) (ink.Aabb, bool) {
	if !t.active || t.style != ToolVerticalSpace {
		return ink.Aabb{}, false
	}
	vp := view.Camera.Viewport()
	half := 1 / view.Camera.TotalZoom()
	return ink.NewAabb(ink.Pt(vp.Min.X, t.verticalSpace.posY-half), ink.Pt(vp.Max.X, t.verticalSpace.posY+half)), true
}

// DrawOverlay draws the line strokes are moved along.
func (t *Tools) DrawOverlay(c *render.Canvas, view *EngineView) error {
	if b, ok := t.Bounds(view); ok {
		c.FillRect(b, render.SelectionColor)
	}
	return nil
}
