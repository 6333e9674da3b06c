package pens

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ink"
)

func strokeBounds(t *testing.T, st *countingStore, key ink.StrokeKey) ink.Aabb {
	t.Helper()
	s, err := st.Stroke(key)
	require.NoError(t, err)
	return s.Bounds()
}

func TestVerticalSpaceTranslatesAndRecordsOnce(t *testing.T) {
	view, st := newTestView(t)
	above := st.InsertStroke(hline(t, 50, 100, 300))
	below := st.InsertStroke(hline(t, 300, 100, 300))
	aboveBounds := strokeBounds(t, st, above)
	belowBounds := strokeBounds(t, st, below)
	tools := NewTools()

	result, _ := tools.HandleEvent(down(200, 200), t0, view)
	assert.Equal(t, ink.ProgressInProgress, result.Progress)
	assert.Equal(t, []ink.StrokeKey{below}, tools.verticalSpace.strokesBelow)

	// within the snap distance nothing moves
	tools.HandleEvent(down(200, 205), t0, view)
	assert.Equal(t, belowBounds, strokeBounds(t, st, below))

	_, flags := tools.HandleEvent(down(200, 260), t0, view)
	assert.True(t, flags.StoreModified)

	result, _ = tools.HandleEvent(up(200, 260), t0, view)
	assert.Equal(t, ink.ProgressFinished, result.Progress)
	assert.Equal(t, 1, st.records)

	assert.Equal(t, aboveBounds, strokeBounds(t, st, above))
	assert.Equal(t, belowBounds.Translate(ink.Pt(0, 60)), strokeBounds(t, st, below))
	assert.False(t, tools.active)
}

func TestVerticalSpaceCancelDoesNotRecord(t *testing.T) {
	view, st := newTestView(t)
	st.InsertStroke(hline(t, 300, 100, 300))
	tools := NewTools()

	tools.HandleEvent(down(200, 200), t0, view)
	tools.HandleEvent(down(200, 240), t0, view)
	result, _ := tools.HandleEvent(ink.CancelEvent{}, t0, view)
	assert.Equal(t, ink.ProgressFinished, result.Progress)
	assert.Zero(t, st.records)
}

func TestVerticalSpaceLimitedToPage(t *testing.T) {
	view, st := newTestView(t)
	cfg := ink.DefaultDocumentConfig()
	cfg.Layout = ink.LayoutFixedSize
	cfg.Format.Height = 400
	view.Document = ink.NewDocument(cfg)
	onPage := st.InsertStroke(hline(t, 300, 100, 300))
	nextPage := st.InsertStroke(hline(t, 500, 100, 300))
	tools := NewTools()

	tools.HandleEvent(down(200, 200), t0, view)
	assert.Equal(t, []ink.StrokeKey{onPage}, tools.verticalSpace.strokesBelow)
	assert.InDelta(t, 400, tools.verticalSpace.limitY, 1e-9)

	tools.HandleEvent(down(200, 350), t0, view)
	tools.HandleEvent(up(200, 350), t0, view)

	// the stroke stops at the end of the page
	assert.InDelta(t, 400, strokeBounds(t, st, onPage).Max.Y, 1e-9)
	assert.InDelta(t, 501, strokeBounds(t, st, nextPage).Max.Y, 1e-9)
}

func TestOffsetCameraTool(t *testing.T) {
	view, _ := newTestView(t)
	view.Config.Tools.Style = ToolOffsetCamera
	tools := NewTools()

	tools.HandleEvent(down(200, 200), t0, view)
	_, flags := tools.HandleEvent(down(200, 150), t0, view)
	assert.True(t, flags.ViewModified)
	assert.InDelta(t, 50, view.Camera.Offset().Y, 1e-9)

	result, _ := tools.HandleEvent(up(200, 150), t0, view)
	assert.Equal(t, ink.ProgressFinished, result.Progress)
}

func TestZoomTool(t *testing.T) {
	view, _ := newTestView(t)
	view.Config.Tools.Style = ToolZoom
	tools := NewTools()

	tools.HandleEvent(down(200, 300), t0, view)
	_, flags := tools.HandleEvent(down(200, 300-view.Config.Tools.ZoomDragSensitivity*math.Ln2), t0, view)
	assert.True(t, flags.ZoomedTemporarily)
	assert.InDelta(t, 2, view.Camera.TotalZoom(), 1e-9)

	// the press point stays under the pointer
	surface := view.Camera.Transform().TransformPoint(ink.Pt(200, 300))
	assert.InDelta(t, 200, surface.X, 1e-6)
	assert.InDelta(t, 300, surface.Y, 1e-6)

	tools.HandleEvent(up(200, 300-view.Config.Tools.ZoomDragSensitivity*math.Ln2/2), t0, view)
	assert.False(t, tools.active)
}
