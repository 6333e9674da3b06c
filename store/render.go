package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/render"
)

// RenderState is the state of the cached rendering of a stroke.
type RenderState int

const (
	// RenderDirty means the images do not match the stroke.
	RenderDirty RenderState = iota
	// RenderBusy means a render job is in flight.
	RenderBusy
	// RenderComplete means the images match the stroke for their token.
	RenderComplete
)

func (s RenderState) String() string {
	switch s {
	case RenderDirty:
		return "dirty"
	case RenderBusy:
		return "busy"
	case RenderComplete:
		return "complete"
	}
	return fmt.Sprintf("RenderState(%d)", int(s))
}

type renderComponent struct {
	images []*ink.Image
	state  RenderState
	// token identifies the in-flight job while busy and the applied
	// images once complete.
	token ink.RenderToken
	// request is the generation of the request the busy job belongs to.
	request uint64
}

// renderKey identifies a viewport regeneration request.
type renderKey struct {
	viewport ink.Aabb
	scale    float64
}

// renderRequest is the context shared by the jobs of one viewport and scale.
// A request for a different viewport or scale cancels it.
type renderRequest struct {
	key    renderKey
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func (r *renderRequest) cancelJobs() {
	if r.cancel != nil {
		r.cancel()
	}
}

// currentRequest returns the request context for key, cancelling the jobs
// of a previous request with another key.
func (s *Store) currentRequest(key renderKey) context.Context {
	if s.request.ctx != nil && s.request.key == key && s.request.ctx.Err() == nil {
		return s.request.ctx
	}
	s.request.cancelJobs()
	ctx, cancel := context.WithCancel(s.ctx)
	s.request = renderRequest{key: key, gen: s.request.gen + 1, ctx: ctx, cancel: cancel}
	return ctx
}

// renderViewport is the viewport extended by the configured margin.
func (s *Store) renderViewport(viewport ink.Aabb) ink.Aabb {
	return viewport.ExtendBy(viewport.Size().Mul(s.opts.viewportMargin))
}

// needsRender reports whether the cached images of e do not cover its
// visible part at scale. A busy job of a request other than gen was
// cancelled and never posts its result.
func needsRender(e *entry, viewport ink.Aabb, scale float64, gen uint64) bool {
	rc := e.render
	if rc.state == RenderDirty {
		return true
	}
	if rc.state == RenderBusy && rc.request != gen {
		return true
	}
	if rc.token.ImageScale != scale || rc.token.Revision != e.revision {
		return true
	}
	visible, ok := e.stroke.Bounds().Intersection(viewport)
	if !ok {
		return false
	}
	return !rc.token.Viewport.ContainsAabb(visible)
}

// RegenerateRenderingInViewportThreaded renders the live strokes visible in
// viewport on the worker pool. Strokes with up to date images are skipped
// unless force is set. Results are posted to sender and must be applied
// with ApplyRenderResult. A request for another viewport or scale cancels
// the jobs of the previous one.
func (s *Store) RegenerateRenderingInViewportThreaded(sender ink.TaskSender, force bool, viewport ink.Aabb, scale float64) {
	ctx := s.currentRequest(renderKey{viewport: viewport, scale: scale})
	area := s.renderViewport(viewport)
	for _, key := range s.KeysIntersectingBounds(area) {
		e := s.entries[key]
		if !force && !needsRender(e, viewport, scale, s.request.gen) {
			continue
		}
		s.submit(ctx, sender, key, e, area, scale)
	}
}

// RegenerateRenderingForStrokesThreaded renders the given strokes for the
// viewport regardless of their cached state.
func (s *Store) RegenerateRenderingForStrokesThreaded(sender ink.TaskSender, keys []ink.StrokeKey, viewport ink.Aabb, scale float64) {
	ctx := s.currentRequest(renderKey{viewport: viewport, scale: scale})
	area := s.renderViewport(viewport)
	for _, key := range keys {
		e, ok := s.live(key)
		if !ok {
			continue
		}
		s.submit(ctx, sender, key, e, area, scale)
	}
}

func (s *Store) submit(ctx context.Context, sender ink.TaskSender, key ink.StrokeKey, e *entry, area ink.Aabb, scale float64) {
	token := ink.RenderToken{Viewport: area, ImageScale: scale, Revision: e.revision}
	if e.render.state == RenderBusy && e.render.token == token && e.render.request == s.request.gen {
		// the same job is already in flight
		return
	}
	e.render.state = RenderBusy
	e.render.token = token
	e.render.request = s.request.gen

	snapshot := e.stroke.Clone()
	flightKey := fmt.Sprintf("%d/%v/%g/%d", key, area, scale, e.revision)

	s.jobs.Add(1)
	ok := s.pool.Submit(func(context.Context) {
		defer s.jobs.Done()
		v, err, shared := s.group.Do(flightKey, func() (any, error) {
			return render.GenImages(ctx, snapshot, area, scale)
		})
		if shared && isCancellation(err) && ctx.Err() == nil {
			// the shared flight belonged to a cancelled request
			v, err = render.GenImages(ctx, snapshot, area, scale)
		}
		if isCancellation(err) {
			ink.Logger().Debug("render job cancelled", "key", key)
			return
		}
		var images []*ink.Image
		if err != nil {
			// a failing stroke renders as nothing instead of blocking the canvas
			ink.Logger().Warn("generating stroke images failed", "key", key, "err", err)
		} else {
			images = v.([]*ink.Image)
		}
		if shared {
			ink.Logger().Debug("render job result shared", "key", key)
		}
		sender.Send(ink.UpdateStrokeWithImagesTask{Key: key, Images: images, Token: token})
	})
	if !ok {
		s.jobs.Done()
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ApplyRenderResult stores the images of a finished render job. Results for
// removed strokes, for an older stroke revision or for a superseded job are
// dropped.
func (s *Store) ApplyRenderResult(task ink.UpdateStrokeWithImagesTask) ink.WidgetFlags {
	e, ok := s.entries[task.Key]
	if !ok {
		ink.Logger().Debug("render result for removed stroke dropped", "key", task.Key)
		return ink.WidgetFlags{}
	}
	if task.Token.Revision != e.revision || e.render.state != RenderBusy || task.Token != e.render.token {
		ink.Logger().Debug("stale render result dropped", "key", task.Key,
			"revision", task.Token.Revision, "current", e.revision)
		return ink.WidgetFlags{}
	}
	e.render.images = task.Images
	e.render.state = RenderComplete
	return ink.WidgetFlags{Redraw: true}
}

// WaitRendering blocks until all submitted render jobs have posted their
// results or ctx is done.
func (s *Store) WaitRendering(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RenderStateOf returns the render state of a stroke.
func (s *Store) RenderStateOf(key ink.StrokeKey) (RenderState, error) {
	e, err := s.get(key)
	if err != nil {
		return RenderDirty, err
	}
	return e.render.state, nil
}

// Images returns the cached images of a stroke.
func (s *Store) Images(key ink.StrokeKey) []*ink.Image {
	e, ok := s.live(key)
	if !ok {
		return nil
	}
	return e.render.images
}

// KeysAsRendered returns the live strokes intersecting viewport in the order
// they are drawn.
func (s *Store) KeysAsRendered(viewport ink.Aabb) []ink.StrokeKey {
	return s.KeysIntersectingBounds(viewport)
}

// DrawToCanvas composites the cached images of the strokes visible in
// viewport and outlines the selection.
func (s *Store) DrawToCanvas(c *render.Canvas, viewport ink.Aabb) {
	for _, key := range s.KeysAsRendered(viewport) {
		e := s.entries[key]
		c.DrawImages(e.render.images)
		if e.selected {
			c.StrokeRect(e.stroke.Bounds(), render.SelectionColor, 1)
		}
	}
}
