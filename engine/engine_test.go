package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/pens"
	"github.com/gogpu/ink/store"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, mutate ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 2
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func pt(x, y float64) ink.Element { return ink.NewElement(ink.Pt(x, y), 1) }

func drawLine(t *testing.T, e *Engine, y float64) {
	t.Helper()
	for x := 100.0; x < 200; x += 10 {
		e.HandlePenEvent(ink.DownEvent{Element: pt(x, y)}, t0)
	}
	result, _ := e.HandlePenEvent(ink.UpEvent{Element: pt(200, y)}, t0)
	require.Equal(t, ink.ProgressFinished, result.Progress)
}

func waitRendering(t *testing.T, e *Engine) ink.WidgetFlags {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	flags, err := e.WaitRendering(ctx)
	require.NoError(t, err)
	return flags
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScaleFactor = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Document.Format.Height = 0
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
pen_style = "eraser"

[document]
layout = "fixed-size"

[pens.eraser]
width = 20.0
style = "split-colliding-strokes"
`))
	require.NoError(t, err)
	assert.Equal(t, pens.StyleEraser, cfg.PenStyle)
	assert.Equal(t, ink.LayoutFixedSize, cfg.Document.Layout)
	assert.InDelta(t, 20, cfg.Pens.Eraser.Width, 1e-9)
	assert.Equal(t, pens.EraserSplitCollidingStrokes, cfg.Pens.Eraser.Style)
	// untouched settings keep their defaults
	assert.Equal(t, DefaultConfig().Pens.Brush, cfg.Pens.Brush)
	assert.Equal(t, store.DefaultHistoryLength, cfg.HistoryLength)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("colour = 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(strings.NewReader("pen_style = \"pencil\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(strings.NewReader("history_length = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDefaultConfigTOMLLoads(t *testing.T) {
	data, err := DefaultConfig().TOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "pen_style")
	assert.Contains(t, string(data), "brush")

	cfg, err := LoadConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Pens.Eraser, cfg.Pens.Eraser)
	assert.Equal(t, DefaultConfig().Document.Layout, cfg.Document.Layout)
}

func TestDrawAndRender(t *testing.T) {
	e := newTestEngine(t)
	drawLine(t, e, 100)

	keys := e.Store().Keys()
	require.Len(t, keys, 1)
	flags := waitRendering(t, e)
	assert.True(t, flags.Redraw)
	state, err := e.Store().RenderStateOf(keys[0])
	require.NoError(t, err)
	assert.Equal(t, store.RenderComplete, state)

	img, err := e.RenderViewport()
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
	assert.Less(t, img.RGBAAt(150, 100).R, img.RGBAAt(150, 140).R)
}

func TestRenderViewportScaleFactor(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.ScaleFactor = 2 })
	img, err := e.RenderViewport()
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())
}

func TestUndoRedo(t *testing.T) {
	e := newTestEngine(t)
	drawLine(t, e, 100)
	drawLine(t, e, 200)
	require.Len(t, e.Store().Keys(), 2)

	flags := e.Undo(t0)
	assert.True(t, flags.HistoryModified)
	assert.Len(t, e.Store().Keys(), 1)
	e.Undo(t0)
	assert.Empty(t, e.Store().Keys())
	assert.True(t, e.Undo(t0).IsEmpty())

	e.Redo(t0)
	e.Redo(t0)
	assert.Len(t, e.Store().Keys(), 2)
	waitRendering(t, e)
}

func TestZoomWithTimeoutCommitsOnce(t *testing.T) {
	e := newTestEngine(t)

	flags := e.ZoomWithTimeout(2)
	assert.True(t, flags.ZoomedTemporarily)
	e.ZoomWithTimeout(3)
	assert.InDelta(t, 3, e.Camera().TotalZoom(), 1e-9)
	assert.InDelta(t, ink.ZoomDefault, e.Camera().Zoom(), 1e-9)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	task, err := e.tasks.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, ink.ZoomTask{Zoom: 3}, task)

	time.Sleep(2 * ink.ZoomTimeout)
	assert.Zero(t, e.tasks.Len())

	flags, quit := e.HandleTask(task)
	assert.False(t, quit)
	assert.True(t, flags.Zoomed)
	assert.InDelta(t, 3, e.Camera().Zoom(), 1e-9)
	assert.InDelta(t, 3, e.Camera().TotalZoom(), 1e-9)
}

func TestRunStopsOnQuit(t *testing.T) {
	e := newTestEngine(t)
	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background(), nil) }()

	e.Tasks().Send(ink.QuitTask{})
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after QuitTask")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx, nil), context.Canceled)
}

func TestChangePenStyle(t *testing.T) {
	e := newTestEngine(t)
	flags := e.ChangePenStyle(pens.StyleEraser, t0)
	assert.True(t, flags.RefreshUI)
	assert.Equal(t, pens.StyleEraser, e.Pens().CurrentStyle())
	assert.Equal(t, pens.StyleEraser, e.Config().PenStyle)
}

func TestEraseThroughEngine(t *testing.T) {
	e := newTestEngine(t)
	drawLine(t, e, 100)
	e.ChangePenStyle(pens.StyleEraser, t0)

	e.HandlePenEvent(ink.DownEvent{Element: pt(150, 100)}, t0)
	e.HandlePenEvent(ink.UpEvent{Element: pt(150, 100)}, t0)
	assert.Empty(t, e.Store().Keys())
	assert.True(t, e.Store().CanUndo())
}

func TestSetViewportSizeAndOffset(t *testing.T) {
	e := newTestEngine(t)
	flags := e.SetViewportSize(ink.Pt(400, 300))
	assert.True(t, flags.ViewModified)
	assert.Equal(t, ink.Pt(400, 300), e.Camera().Size())

	e.SetOffset(ink.Pt(0, 100))
	assert.Equal(t, ink.NewAabb(ink.Pt(0, 100), ink.Pt(400, 400)), e.Camera().Viewport())
}
