package ink

import "math"

// DocumentConfig holds the user-facing document settings.
type DocumentConfig struct {
	Format     Format `toml:"format"`
	Layout     Layout `toml:"layout"`
	Background Color  `toml:"background"`
	// SnapPositions snaps tool positions to the background pattern grid.
	SnapPositions bool `toml:"snap_positions"`
	// PatternSize is the spacing of the background pattern grid.
	PatternSize Point `toml:"pattern_size"`
}

// DefaultDocumentConfig returns an A4 continuous vertical document.
func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Format:      DefaultFormat(),
		Layout:      LayoutContinuousVertical,
		Background:  White,
		PatternSize: Pt(32, 32),
	}
}

// Document owns the canvas bounds and the layout policy that resizes them.
// Bounds always have non-negative extents.
type Document struct {
	X, Y          float64
	Width, Height float64
	Config        DocumentConfig
}

// NewDocument creates a document covering one page at the origin.
func NewDocument(cfg DocumentConfig) *Document {
	return &Document{
		Width:  cfg.Format.Width,
		Height: cfg.Format.Height,
		Config: cfg,
	}
}

// Bounds returns the document bounds in document space.
func (d *Document) Bounds() Aabb {
	return NewAabbFromSize(Pt(d.X, d.Y), Pt(d.Width, d.Height))
}

// SetBounds replaces the document bounds. Negative extents are clamped to 0.
func (d *Document) SetBounds(b Aabb) {
	d.X = b.Min.X
	d.Y = b.Min.Y
	d.Width = math.Max(b.Width(), 0)
	d.Height = math.Max(b.Height(), 0)
}

// PageCount returns the number of whole pages the document height spans.
func (d *Document) PageCount() int {
	if d.Config.Format.Height <= 0 {
		return 1
	}
	return int(math.Max(math.Ceil(d.Height/d.Config.Format.Height), 1))
}

// padding returns the margin infinite layouts keep around content.
func (d *Document) padding() Point {
	return d.Config.Format.Size().Mul(2)
}

// contentBounds falls back to a single page at the origin for an empty store,
// so the document never collapses to zero area.
func (d *Document) contentBounds(content ContentSource) Aabb {
	if b, ok := content.BoundsForAllStrokes(); ok {
		return b
	}
	return NewAabbFromSize(Point{}, d.Config.Format.Size())
}

// ResizeToFitContent resizes the document to the drawn content according to
// the active layout. Infinite layouts additionally include the viewport.
func (d *Document) ResizeToFitContent(content ContentSource, camera *Camera) WidgetFlags {
	old := d.Bounds()
	switch d.Config.Layout {
	case LayoutFixedSize:
		d.resizeFixedSize(content)
	case LayoutContinuousVertical:
		d.resizeContinuousVertical(content)
	case LayoutSemiInfinite:
		d.resizeSemiInfiniteToFitContent(content)
		d.expandSemiInfinite(camera.Viewport())
	case LayoutInfinite:
		d.resizeInfiniteToFitContent(content)
		d.expandInfinite(camera.Viewport())
	}
	return d.boundsChanged(old)
}

// ResizeAutoexpand is called after content changes. The fixed size layout is
// left alone; use ResizeToFitContent for it.
func (d *Document) ResizeAutoexpand(content ContentSource, camera *Camera) WidgetFlags {
	old := d.Bounds()
	switch d.Config.Layout {
	case LayoutFixedSize:
	case LayoutContinuousVertical:
		d.resizeContinuousVertical(content)
	case LayoutSemiInfinite:
		d.resizeSemiInfiniteToFitContent(content)
		d.expandSemiInfinite(camera.Viewport())
	case LayoutInfinite:
		d.resizeInfiniteToFitContent(content)
		d.expandInfinite(camera.Viewport())
	}
	return d.boundsChanged(old)
}

// ExpandAutoexpand grows infinite layouts to cover the current viewport. It
// never shrinks the document and does nothing for page based layouts.
func (d *Document) ExpandAutoexpand(camera *Camera, _ ContentSource) WidgetFlags {
	old := d.Bounds()
	switch d.Config.Layout {
	case LayoutFixedSize, LayoutContinuousVertical:
	case LayoutSemiInfinite:
		d.expandSemiInfinite(camera.Viewport())
	case LayoutInfinite:
		d.expandInfinite(camera.Viewport())
	}
	return d.boundsChanged(old)
}

func (d *Document) boundsChanged(old Aabb) WidgetFlags {
	if d.Bounds() == old {
		return WidgetFlags{}
	}
	return WidgetFlags{Resize: true, Redraw: true}
}

func (d *Document) resizeFixedSize(content ContentSource) {
	format := d.Config.Format
	pages := 1.0
	if format.Height > 0 {
		// at least one page
		pages = math.Max(math.Ceil(content.CalcHeight()/format.Height), 1)
	}
	d.SetBounds(NewAabbFromSize(Point{}, Pt(format.Width, pages*format.Height)))
}

func (d *Document) resizeContinuousVertical(content ContentSource) {
	format := d.Config.Format
	height := content.CalcHeight() + format.Height
	d.SetBounds(NewAabbFromSize(Point{}, Pt(format.Width, height)))
}

func (d *Document) resizeSemiInfiniteToFitContent(content ContentSource) {
	b := d.contentBounds(content).ExtendRightAndBottomBy(d.padding())
	// The leading edges stay pinned at the origin.
	d.SetBounds(NewAabb(Point{}, b.Max.Max(Point{})))
}

func (d *Document) expandSemiInfinite(viewport Aabb) {
	current := d.Bounds()
	grown := current.Merged(viewport.ExtendRightAndBottomBy(d.padding()))
	d.SetBounds(Aabb{Min: current.Min, Max: grown.Max})
}

func (d *Document) resizeInfiniteToFitContent(content ContentSource) {
	d.SetBounds(d.contentBounds(content).ExtendBy(d.padding()))
}

func (d *Document) expandInfinite(viewport Aabb) {
	d.SetBounds(d.Bounds().Merged(viewport.ExtendBy(d.padding())))
}

// SnapPosition snaps pos to the background pattern grid when snapping is
// enabled and returns pos unchanged otherwise.
func (d *Document) SnapPosition(pos Point) Point {
	size := d.Config.PatternSize
	if !d.Config.SnapPositions || size.X <= 0 || size.Y <= 0 {
		return pos
	}
	return Pt(
		math.Round(pos.X/size.X)*size.X,
		math.Round(pos.Y/size.Y)*size.Y,
	)
}
