package ink

import (
	"context"
	"math"
	"testing"
	"time"
)

func infiniteDoc() *Document {
	cfg := DefaultDocumentConfig()
	cfg.Layout = LayoutInfinite
	return NewDocument(cfg)
}

func TestCameraZoomClamp(t *testing.T) {
	tests := []struct {
		zoom, want float64
	}{
		{1.5, 1.5},
		{100, ZoomMax},
		{0.01, ZoomMin},
		{-3, ZoomMin},
	}
	for _, tt := range tests {
		c := NewCamera()
		flags := c.ZoomTo(tt.zoom)
		if c.Zoom() != tt.want {
			t.Errorf("ZoomTo(%v): zoom = %v, want %v", tt.zoom, c.Zoom(), tt.want)
		}
		if !flags.Zoomed || !flags.ViewModified {
			t.Errorf("ZoomTo(%v) flags = %v", tt.zoom, flags)
		}
	}

	c := NewCamera()
	if flags := c.ZoomTo(math.NaN()); !flags.IsEmpty() || c.Zoom() != ZoomDefault {
		t.Errorf("ZoomTo(NaN) changed the camera: %v %v", flags, c.Zoom())
	}
}

func TestCameraTemporaryZoomClamp(t *testing.T) {
	c := NewCamera()
	c.ZoomTo(2)
	c.ZoomTemporarilyTo(10)
	if got := c.TotalZoom(); got != ZoomMax {
		t.Errorf("TotalZoom = %v, want %v", got, ZoomMax)
	}
	c.ZoomTemporarilyTo(0.001)
	if got := c.TotalZoom(); math.Abs(got-ZoomMin) > 1e-12 {
		t.Errorf("TotalZoom = %v, want %v", got, ZoomMin)
	}
	// a permanent zoom resets the overlay
	c.ZoomTo(1)
	if c.TemporaryZoom() != 1 {
		t.Errorf("TemporaryZoom = %v, want 1", c.TemporaryZoom())
	}
}

func TestCameraTransformRoundTrip(t *testing.T) {
	doc := infiniteDoc()
	c := NewCamera()
	c.ZoomTo(1.75)
	c.ZoomTemporarilyTo(1.2)
	c.SetOffset(Pt(-123.5, 456), doc)

	for _, p := range []Point{{}, Pt(10, 20), Pt(-300, 1e4), Pt(0.25, -0.5)} {
		back := c.TransformInv().TransformPoint(c.Transform().TransformPoint(p))
		if !back.Approx(p, 1e-9) {
			t.Errorf("round trip of %v = %v", p, back)
		}
	}

	// document points map to p * total zoom - offset
	got := c.Transform().TransformPoint(Pt(100, 100))
	tz := c.TotalZoom()
	if want := Pt(100*tz+123.5, 100*tz-456); !got.Approx(want, 1e-9) {
		t.Errorf("Transform = %v, want %v", got, want)
	}
}

func TestCameraViewport(t *testing.T) {
	doc := infiniteDoc()
	c := NewCamera()
	c.SetSize(Pt(20, 30), doc)
	c.ZoomTo(2)
	c.SetOffset(Pt(10, 10), doc)

	if got, want := c.Viewport(), NewAabb(Pt(5, 5), Pt(15, 20)); got != want {
		t.Errorf("Viewport = %v, want %v", got, want)
	}
}

func TestCameraScaleFactor(t *testing.T) {
	c := NewCamera()
	c.ZoomTo(1.5)
	if flags := c.SetScaleFactor(2); !flags.Redraw {
		t.Errorf("SetScaleFactor flags = %v", flags)
	}
	if got := c.ImageScale(); got != 3 {
		t.Errorf("ImageScale = %v, want 3", got)
	}
	if flags := c.SetScaleFactor(2); !flags.IsEmpty() {
		t.Error("unchanged scale factor reported flags")
	}
	if flags := c.SetScaleFactor(0); !flags.IsEmpty() || c.ScaleFactor() != 2 {
		t.Error("non-positive scale factor was accepted")
	}
	got := c.TransformForScale(2).TransformPoint(Pt(10, 10))
	if want := Pt(30, 30); !got.Approx(want, 1e-12) {
		t.Errorf("TransformForScale = %v, want %v", got, want)
	}
}

func TestCameraOffsetClampPaged(t *testing.T) {
	doc := NewDocument(DefaultDocumentConfig())
	c := NewCamera()
	c.SetSize(Pt(800, 600), doc)

	c.SetOffset(Pt(-1000, -1000), doc)
	if want := Pt(-OvershootHorizontal, -OvershootVertical); c.Offset() != want {
		t.Errorf("lower clamp = %v, want %v", c.Offset(), want)
	}

	c.SetOffset(Pt(1e5, 1e5), doc)
	want := Pt(FormatA4Width-800+OvershootHorizontal, FormatA4Height-600+OvershootVertical)
	if !c.Offset().Approx(want, 1e-9) {
		t.Errorf("upper clamp = %v, want %v", c.Offset(), want)
	}
}

func TestCameraCentersNarrowDocument(t *testing.T) {
	cfg := DefaultDocumentConfig()
	cfg.Layout = LayoutFixedSize
	cfg.Format = Format{Width: 300, Height: 100, DPI: FormatDPIDefault}
	doc := NewDocument(cfg)

	c := NewCamera()
	c.SetSize(Pt(800, 600), doc)
	c.SetOffset(Pt(500, 500), doc)
	// narrower than the viewport: centred; shorter: pinned to the top overshoot
	if want := Pt(-250, -OvershootVertical); c.Offset() != want {
		t.Errorf("Offset = %v, want %v", c.Offset(), want)
	}
}

func TestCameraZoomAtKeepsAnchor(t *testing.T) {
	doc := infiniteDoc()
	c := NewCamera()
	c.SetOffset(Pt(40, 60), doc)

	centre := Pt(400, 300)
	anchor := c.TransformInv().TransformPoint(centre)
	c.ZoomAtCenter(2.5, doc)

	if got := c.Transform().TransformPoint(anchor); !got.Approx(centre, 1e-9) {
		t.Errorf("anchor moved to %v, want %v", got, centre)
	}
}

func TestDetectNudgeNeeded(t *testing.T) {
	c := NewCamera()
	c.SetSize(Pt(800, 600), infiniteDoc())

	tests := []struct {
		name string
		pos  Point
		want NudgeDirection
		ok   bool
	}{
		{"centre", Pt(400, 300), 0, false},
		{"north", Pt(400, 5), NudgeNorth, true},
		{"south", Pt(400, 595), NudgeSouth, true},
		{"east", Pt(795, 300), NudgeEast, true},
		{"west", Pt(5, 300), NudgeWest, true},
		{"north-east wins", Pt(795, 5), NudgeNorthEast, true},
		{"south-east wins", Pt(795, 595), NudgeSouthEast, true},
		{"south-west wins", Pt(5, 595), NudgeSouthWest, true},
		{"north-west wins", Pt(5, 5), NudgeNorthWest, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.DetectNudgeNeeded(tt.pos)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("DetectNudgeNeeded(%v) = %v, %v; want %v, %v", tt.pos, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNudgeWithPos(t *testing.T) {
	doc := infiniteDoc()
	c := NewCamera()
	c.SetSize(Pt(800, 600), doc)

	flags := c.NudgeWithPos(Pt(400, 2), doc)
	if !flags.UpdateView || !flags.ViewModified {
		t.Errorf("flags = %v", flags)
	}
	if want := Pt(0, -NudgeStep); c.Offset() != want {
		t.Errorf("Offset = %v, want %v", c.Offset(), want)
	}
	if flags := c.NudgeWithPos(Pt(400, 300), doc); !flags.IsEmpty() {
		t.Errorf("no nudge expected, got %v", flags)
	}
}

func TestZoomWithTimeoutDebounce(t *testing.T) {
	ch := NewTaskChannel()
	c := NewCamera()
	c.zoomTimeout = 20 * time.Millisecond
	t.Cleanup(c.Close)

	flags := c.ZoomWithTimeout(2, ch.Sender())
	if !flags.ZoomedTemporarily || flags.Zoomed {
		t.Errorf("flags = %v", flags)
	}
	c.ZoomWithTimeout(3, ch.Sender())
	if c.Zoom() != 1 || c.TotalZoom() != 3 {
		t.Errorf("zoom = %v total = %v, want 1 and 3", c.Zoom(), c.TotalZoom())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	task, err := ch.Recv(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if task != (ZoomTask{Zoom: 3}) {
		t.Errorf("task = %v, want ZoomTask{3}", task)
	}
	time.Sleep(3 * c.zoomTimeout)
	if ch.Len() != 0 {
		t.Errorf("%d extra tasks, want a single commit", ch.Len())
	}

	// a new request after the commit installs a fresh debounce
	c.ZoomWithTimeout(4, ch.Sender())
	task, err = ch.Recv(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if task != (ZoomTask{Zoom: 4}) {
		t.Errorf("task = %v, want ZoomTask{4}", task)
	}
}

func TestCameraCloseCancelsZoomCommit(t *testing.T) {
	ch := NewTaskChannel()
	c := NewCamera()
	c.zoomTimeout = 10 * time.Millisecond

	c.ZoomWithTimeout(2, ch.Sender())
	c.Close()
	time.Sleep(5 * c.zoomTimeout)
	if ch.Len() != 0 {
		t.Error("zoom committed after Close")
	}
}
