package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/pens"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/store"
)

// Engine owns all state of one open document.
type Engine struct {
	config   Config
	document *ink.Document
	camera   *ink.Camera
	store    *store.Store
	pens     *pens.Holder
	tasks    *ink.TaskChannel
}

// New creates an engine for an empty document.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		config:   cfg,
		document: ink.NewDocument(cfg.Document),
		camera:   ink.NewCamera(),
		store: store.New(
			store.WithWorkers(cfg.Workers),
			store.WithHistoryLength(cfg.HistoryLength),
		),
		pens:  pens.NewHolder(),
		tasks: ink.NewTaskChannel(),
	}
	e.camera.SetScaleFactor(cfg.ScaleFactor)
	e.camera.SetSize(cfg.Viewport, e.document)
	e.document.ResizeToFitContent(e.store, e.camera)

	now := time.Now()
	e.pens.Init(now, e.view())
	e.pens.ChangeStyle(cfg.PenStyle, now, e.view())
	return e, nil
}

// Close finishes the active gesture and stops all background work.
func (e *Engine) Close() {
	e.pens.Deinit(time.Now(), e.view())
	e.camera.Close()
	e.store.Close()
	e.tasks.Close()
}

func (e *Engine) view() *pens.EngineViewMut {
	return &pens.EngineViewMut{
		Tasks:    e.tasks.Sender(),
		Config:   &e.config.Pens,
		Document: e.document,
		Store:    e.store,
		Camera:   e.camera,
	}
}

// Config returns the current settings.
func (e *Engine) Config() Config { return e.config }

// Document returns the document.
func (e *Engine) Document() *ink.Document { return e.document }

// Camera returns the camera.
func (e *Engine) Camera() *ink.Camera { return e.camera }

// Store returns the stroke store.
func (e *Engine) Store() *store.Store { return e.store }

// Pens returns the pen holder.
func (e *Engine) Pens() *pens.Holder { return e.pens }

// Tasks returns the sending half of the task channel.
func (e *Engine) Tasks() ink.TaskSender { return e.tasks.Sender() }

// HandlePenEvent forwards a pen event to the active pen.
func (e *Engine) HandlePenEvent(event ink.PenEvent, now time.Time) (ink.EventResult[ink.PenProgress], ink.WidgetFlags) {
	result, flags := e.pens.HandleEvent(event, now, e.view())
	if flags.ViewModified && !flags.ZoomedTemporarily {
		e.UpdateRenderingCurrentViewport(false)
	}
	return result, flags
}

// ChangePenStyle switches the active pen.
func (e *Engine) ChangePenStyle(style pens.PenStyle, now time.Time) ink.WidgetFlags {
	e.config.PenStyle = style
	return e.pens.ChangeStyle(style, now, e.view())
}

// SetPensConfig replaces the pen settings and applies them to the active pen.
func (e *Engine) SetPensConfig(cfg pens.Config) ink.WidgetFlags {
	e.config.Pens = cfg
	return e.pens.UpdateState(e.view())
}

// SetDocumentConfig replaces the document settings and resizes the document.
func (e *Engine) SetDocumentConfig(cfg ink.DocumentConfig) ink.WidgetFlags {
	e.config.Document = cfg
	e.document.Config = cfg
	flags := e.ResizeToFitContent()
	flags.IndicateChangedStore = true
	return flags
}

// HandleTask applies one background task. quit is true for a QuitTask.
func (e *Engine) HandleTask(task ink.EngineTask) (flags ink.WidgetFlags, quit bool) {
	switch t := task.(type) {
	case ink.ZoomTask:
		flags = e.ZoomTo(t.Zoom)
	case ink.UpdateStrokeWithImagesTask:
		flags = e.store.ApplyRenderResult(t)
	case ink.BlinkTypewriterCursorTask:
		flags = e.pens.HandleBlink(e.view())
	case ink.QuitTask:
		quit = true
	default:
		ink.Logger().Warn("unknown engine task", "task", fmt.Sprintf("%T", task))
	}
	return flags, quit
}

// DrainTasks applies every queued task without blocking.
func (e *Engine) DrainTasks() (flags ink.WidgetFlags, quit bool) {
	for {
		task, ok := e.tasks.TryRecv()
		if !ok {
			return flags, quit
		}
		f, q := e.HandleTask(task)
		flags.Merge(f)
		quit = quit || q
	}
}

// Run applies tasks as they arrive until a QuitTask is received, the task
// channel is closed or ctx is done. onFlags is called with the flags of every
// task that requested something.
func (e *Engine) Run(ctx context.Context, onFlags func(ink.WidgetFlags)) error {
	for {
		task, err := e.tasks.Recv(ctx)
		if errors.Is(err, ink.ErrTaskQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		flags, quit := e.HandleTask(task)
		if onFlags != nil && !flags.IsEmpty() {
			onFlags(flags)
		}
		if quit {
			return nil
		}
	}
}

// WaitRendering waits for running render jobs and applies their results.
func (e *Engine) WaitRendering(ctx context.Context) (ink.WidgetFlags, error) {
	if err := e.store.WaitRendering(ctx); err != nil {
		return ink.WidgetFlags{}, err
	}
	flags, _ := e.DrainTasks()
	return flags, nil
}

// SetViewportSize resizes the surface.
func (e *Engine) SetViewportSize(size ink.Point) ink.WidgetFlags {
	flags := e.camera.SetSize(size, e.document)
	flags.Merge(e.document.ExpandAutoexpand(e.camera, e.store))
	e.UpdateRenderingCurrentViewport(false)
	return flags
}

// SetScaleFactor changes the device pixel ratio.
func (e *Engine) SetScaleFactor(scaleFactor float64) ink.WidgetFlags {
	flags := e.camera.SetScaleFactor(scaleFactor)
	if !flags.IsEmpty() {
		e.config.ScaleFactor = scaleFactor
		e.UpdateRenderingCurrentViewport(false)
	}
	return flags
}

// SetOffset scrolls the viewport.
func (e *Engine) SetOffset(offset ink.Point) ink.WidgetFlags {
	flags := e.camera.SetOffset(offset, e.document)
	flags.Merge(e.document.ExpandAutoexpand(e.camera, e.store))
	e.UpdateRenderingCurrentViewport(false)
	return flags
}

// ZoomWithTimeout zooms temporarily right away and commits the zoom once no
// further zoom request arrived for the zoom timeout.
func (e *Engine) ZoomWithTimeout(zoom float64) ink.WidgetFlags {
	return e.camera.ZoomWithTimeout(zoom, e.tasks.Sender())
}

// ZoomTo commits a permanent zoom and re-renders the viewport at the new
// scale.
func (e *Engine) ZoomTo(zoom float64) ink.WidgetFlags {
	if math.IsNaN(zoom) {
		return ink.WidgetFlags{}
	}
	flags := e.camera.ZoomTo(zoom)
	flags.Merge(e.camera.SetOffset(e.camera.Offset(), e.document))
	flags.Merge(e.document.ExpandAutoexpand(e.camera, e.store))
	e.UpdateRenderingCurrentViewport(false)
	return flags
}

// Undo goes back one history step.
func (e *Engine) Undo(now time.Time) ink.WidgetFlags {
	flags := e.resetPen(now)
	flags.Merge(e.store.Undo())
	flags.Merge(e.afterHistoryChange())
	return flags
}

// Redo restores the step undone last.
func (e *Engine) Redo(now time.Time) ink.WidgetFlags {
	flags := e.resetPen(now)
	flags.Merge(e.store.Redo())
	flags.Merge(e.afterHistoryChange())
	return flags
}

// resetPen finishes the gesture of the active pen, which may refer to
// strokes a history change removes.
func (e *Engine) resetPen(now time.Time) ink.WidgetFlags {
	view := e.view()
	flags := e.pens.Deinit(now, view)
	flags.Merge(e.pens.Init(now, view))
	return flags
}

func (e *Engine) afterHistoryChange() ink.WidgetFlags {
	flags := e.document.ResizeAutoexpand(e.store, e.camera)
	e.UpdateRenderingCurrentViewport(true)
	return flags
}

// UpdateRenderingCurrentViewport schedules rendering of the strokes in the
// current viewport. With force, strokes with current images are rendered
// again.
func (e *Engine) UpdateRenderingCurrentViewport(force bool) {
	e.store.RegenerateRenderingInViewportThreaded(e.tasks.Sender(), force, e.camera.Viewport(), e.camera.ImageScale())
}

// ResizeToFitContent resizes the document to its content, including the
// fixed size layout.
func (e *Engine) ResizeToFitContent() ink.WidgetFlags {
	flags := e.document.ResizeToFitContent(e.store, e.camera)
	flags.Merge(e.camera.SetOffset(e.camera.Offset(), e.document))
	e.UpdateRenderingCurrentViewport(false)
	return flags
}

// RenderViewport draws the visible part of the document with the cached
// stroke images and the pen overlay, at device resolution.
func (e *Engine) RenderViewport() (*image.RGBA, error) {
	sf := e.camera.ScaleFactor()
	size := e.camera.Size().Mul(sf)
	c := render.NewCanvas(int(math.Ceil(size.X)), int(math.Ceil(size.Y)), e.camera.TransformForScale(sf))
	c.DrawDocument(e.document)
	e.store.DrawToCanvas(c, e.camera.Viewport())
	if err := e.pens.DrawOverlay(c, e.view().AsImm()); err != nil {
		return nil, fmt.Errorf("engine: drawing pen overlay: %w", err)
	}
	return c.Image(), nil
}
