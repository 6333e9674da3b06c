package pens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ink"
)

func TestEraserTransition(t *testing.T) {
	el := ink.NewElement(ink.Pt(1, 1), ink.PressureDefault)
	tests := []struct {
		name     string
		state    eraserState
		event    ink.PenEvent
		next     eraserState
		action   eraserAction
		handled  bool
		progress ink.PenProgress
	}{
		{"up down", eraserUp, ink.DownEvent{Element: el}, eraserDown, eraserAction{updateMotion: true, erase: true}, true, ink.ProgressInProgress},
		{"proximity down", eraserProximity, ink.DownEvent{Element: el}, eraserDown, eraserAction{updateMotion: true, erase: true}, true, ink.ProgressInProgress},
		{"down down", eraserDown, ink.DownEvent{Element: el}, eraserDown, eraserAction{updateMotion: true, erase: true}, true, ink.ProgressInProgress},
		{"up proximity", eraserUp, ink.ProximityEvent{Element: el}, eraserProximity, eraserAction{updateMotion: true}, false, ink.ProgressIdle},
		{"down proximity", eraserDown, ink.ProximityEvent{Element: el}, eraserProximity, eraserAction{updateMotion: true}, false, ink.ProgressIdle},
		{"down up", eraserDown, ink.UpEvent{Element: el}, eraserUp, eraserAction{erase: true, record: true}, true, ink.ProgressFinished},
		{"proximity up", eraserProximity, ink.UpEvent{Element: el}, eraserUp, eraserAction{}, false, ink.ProgressIdle},
		{"proximity cancel", eraserProximity, ink.CancelEvent{}, eraserUp, eraserAction{record: true}, true, ink.ProgressFinished},
		{"down cancel", eraserDown, ink.CancelEvent{}, eraserUp, eraserAction{record: true}, true, ink.ProgressFinished},
		{"up cancel", eraserUp, ink.CancelEvent{}, eraserUp, eraserAction{}, false, ink.ProgressIdle},
		{"down text", eraserDown, ink.TextEvent{Text: "x"}, eraserDown, eraserAction{}, false, ink.ProgressInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, action, result := eraserTransition(tt.state, tt.event)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.handled, result.Handled)
			assert.Equal(t, tt.progress, result.Progress)
		})
	}
}

func TestEraserDownUpRecordsOnce(t *testing.T) {
	view, st := newTestView(t)
	st.InsertStroke(hline(t, 100, 100, 300))
	e := NewEraser()

	result, flags := e.HandleEvent(down(150, 100), t0, view)
	assert.Equal(t, ink.ProgressInProgress, result.Progress)
	assert.True(t, flags.StoreModified)
	assert.Empty(t, st.Keys())

	result, _ = e.HandleEvent(up(150, 100), t0, view)
	assert.Equal(t, ink.ProgressFinished, result.Progress)
	assert.Equal(t, 1, st.records)
	assert.Equal(t, eraserUp, e.state)
	assert.True(t, st.CanUndo())
}

func TestEraserProximityDoesNotErase(t *testing.T) {
	view, st := newTestView(t)
	st.InsertStroke(hline(t, 100, 100, 300))
	e := NewEraser()

	result, _ := e.HandleEvent(proximity(150, 100), t0, view)
	assert.False(t, result.Handled)
	assert.Len(t, st.Keys(), 1)

	result, _ = e.HandleEvent(up(150, 100), t0, view)
	assert.False(t, result.Handled)
	assert.Zero(t, st.records)
}

func TestEraserCancelRecords(t *testing.T) {
	view, st := newTestView(t)
	e := NewEraser()

	e.HandleEvent(proximity(10, 10), t0, view)
	result, _ := e.HandleEvent(ink.CancelEvent{}, t0, view)
	assert.Equal(t, ink.ProgressFinished, result.Progress)
	assert.Equal(t, 1, st.records)
	assert.Equal(t, eraserUp, e.state)
}

func TestEraserSplit(t *testing.T) {
	view, st := newTestView(t)
	view.Config.Eraser.Style = EraserSplitCollidingStrokes
	key := st.InsertStroke(hline(t, 100, 100, 300))
	e := NewEraser()

	e.HandleEvent(down(205, 100), t0, view)
	e.HandleEvent(up(205, 100), t0, view)

	assert.True(t, st.IsTrashed(key))
	keys := st.Keys()
	require.Len(t, keys, 2)
	for _, k := range keys {
		s, err := st.Stroke(k)
		require.NoError(t, err)
		b := s.Bounds()
		assert.False(t, b.Min.X < 199 && b.Max.X > 211, "piece %v still crosses the eraser", b)
	}
	assert.Equal(t, 1, st.records)
}

func TestEraserBounds(t *testing.T) {
	view, _ := newTestView(t)
	e := NewEraser()

	_, ok := e.Bounds(view.AsImm())
	assert.False(t, ok)

	e.HandleEvent(proximity(50, 60), t0, view)
	b, ok := e.Bounds(view.AsImm())
	require.True(t, ok)
	assert.InDelta(t, view.Config.Eraser.Width, b.Width(), 1e-9)
	assert.Equal(t, ink.Pt(50, 60), b.Center())
}
