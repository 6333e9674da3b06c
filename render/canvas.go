// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/ink"
)

// Colors used for document decorations.
var (
	OutsideColor   = ink.RGB(0.85, 0.85, 0.85)
	PatternColor   = ink.RGB(0.75, 0.80, 0.90)
	PageBreakColor = ink.RGB(0.55, 0.55, 0.55)
	SelectionColor = ink.RGB(0.20, 0.45, 0.90)
)

// minPatternSpacing hides the background pattern when its dots would be
// closer than this many pixels.
const minPatternSpacing = 6

// Canvas composites document decorations and stroke images into a viewport
// sized RGBA image. Transform maps document space to pixels.
type Canvas struct {
	dst       *image.RGBA
	transform ink.Matrix
}

// NewCanvas creates a canvas of the given pixel size.
func NewCanvas(width, height int, transform ink.Matrix) *Canvas {
	return &Canvas{
		dst:       image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		transform: transform,
	}
}

// Image returns the composited image.
func (c *Canvas) Image() *image.RGBA { return c.dst }

// Clear fills the whole canvas.
func (c *Canvas) Clear(col ink.Color) {
	xdraw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, xdraw.Src)
}

// pixelRect maps a document box to the covered pixel rectangle.
func (c *Canvas) pixelRect(b ink.Aabb) image.Rectangle {
	p := c.transform.TransformAabb(b)
	return image.Rect(
		int(math.Floor(p.Min.X)), int(math.Floor(p.Min.Y)),
		int(math.Ceil(p.Max.X)), int(math.Ceil(p.Max.Y)),
	).Intersect(c.dst.Bounds())
}

// FillRect fills a document space box.
func (c *Canvas) FillRect(b ink.Aabb, col ink.Color) {
	r := c.pixelRect(b)
	if r.Empty() {
		return
	}
	xdraw.Draw(c.dst, r, image.NewUniform(col.NRGBA()), image.Point{}, xdraw.Over)
}

// StrokeRect outlines a document space box with a line width in pixels.
func (c *Canvas) StrokeRect(b ink.Aabb, col ink.Color, width int) {
	p := c.transform.TransformAabb(b)
	r := image.Rect(
		int(math.Floor(p.Min.X)), int(math.Floor(p.Min.Y)),
		int(math.Ceil(p.Max.X)), int(math.Ceil(p.Max.Y)),
	)
	src := image.NewUniform(col.NRGBA())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		e = e.Intersect(c.dst.Bounds())
		if !e.Empty() {
			xdraw.Draw(c.dst, e, src, image.Point{}, xdraw.Over)
		}
	}
}

// DrawDocument draws the area outside the document, the document background,
// the pattern grid and page breaks of paged layouts.
func (c *Canvas) DrawDocument(doc *ink.Document) {
	c.Clear(OutsideColor)
	bounds := doc.Bounds()
	c.FillRect(bounds, doc.Config.Background)
	c.drawPattern(doc)

	switch doc.Config.Layout {
	case ink.LayoutFixedSize, ink.LayoutContinuousVertical:
		fh := doc.Config.Format.Height
		if fh <= 0 {
			return
		}
		for y := bounds.Min.Y + fh; y < bounds.Max.Y; y += fh {
			a := c.transform.TransformPoint(ink.Pt(bounds.Min.X, y))
			b := c.transform.TransformPoint(ink.Pt(bounds.Max.X, y))
			py := int(math.Floor(a.Y))
			r := image.Rect(int(math.Floor(a.X)), py, int(math.Ceil(b.X)), py+1).Intersect(c.dst.Bounds())
			if !r.Empty() {
				xdraw.Draw(c.dst, r, image.NewUniform(PageBreakColor.NRGBA()), image.Point{}, xdraw.Over)
			}
		}
	}
}

func (c *Canvas) drawPattern(doc *ink.Document) {
	spacing := doc.Config.PatternSize
	scale := c.transform.ScaleFactor()
	if spacing.X <= 0 || spacing.Y <= 0 || spacing.X*scale < minPatternSpacing || spacing.Y*scale < minPatternSpacing {
		return
	}
	visible, ok := doc.Bounds().Intersection(c.transform.Invert().TransformAabb(ink.NewAabb(ink.Pt(0, 0), ink.Pt(float64(c.dst.Rect.Dx()), float64(c.dst.Rect.Dy())))))
	if !ok {
		return
	}
	dot := PatternColor.NRGBA()
	startX := math.Ceil(visible.Min.X/spacing.X) * spacing.X
	startY := math.Ceil(visible.Min.Y/spacing.Y) * spacing.Y
	for y := startY; y <= visible.Max.Y; y += spacing.Y {
		for x := startX; x <= visible.Max.X; x += spacing.X {
			p := c.transform.TransformPoint(ink.Pt(x, y))
			c.dst.Set(int(p.X), int(p.Y), dot)
		}
	}
}

// DrawImage composites a stroke image at its document bounds, scaling it if
// it was rendered at a different image scale.
func (c *Canvas) DrawImage(img *ink.Image) {
	if img.IsEmpty() {
		return
	}
	target := c.transform.TransformAabb(img.Bounds)
	r := image.Rect(
		int(math.Round(target.Min.X)), int(math.Round(target.Min.Y)),
		int(math.Round(target.Max.X)), int(math.Round(target.Max.Y)),
	)
	if r.Empty() || !r.Overlaps(c.dst.Bounds()) {
		return
	}
	src := img.ToRGBA()
	if r.Dx() == img.Width && r.Dy() == img.Height {
		xdraw.Draw(c.dst, r, src, image.Point{}, xdraw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(c.dst, r, src, src.Bounds(), xdraw.Over, nil)
}

// DrawImages composites images in order.
func (c *Canvas) DrawImages(images []*ink.Image) {
	for _, img := range images {
		c.DrawImage(img)
	}
}

// Pixel returns the color at a pixel, mostly for tests and debugging.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	return c.dst.RGBAAt(x, y)
}
