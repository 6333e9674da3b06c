// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

// MaxImageSize is the largest width or height of a single rasterized image.
const MaxImageSize = 16384

// ErrImageTooLarge is returned when an area cannot be rasterized at the
// requested scale.
var ErrImageTooLarge = errors.New("render: image too large")

// pixelSize returns the pixel dimensions covering area at scale.
func pixelSize(area ink.Aabb, scale float64) (int, int) {
	return int(math.Ceil(area.Width() * scale)), int(math.Ceil(area.Height() * scale))
}

// Rasterize draws the composition clipped to area (document space) into a
// new image at the given scale. It returns nil for an empty area.
func Rasterize(comp stroke.Composition, area ink.Aabb, scale float64) (*ink.Image, error) {
	if scale <= 0 || math.IsNaN(scale) {
		return nil, fmt.Errorf("render: invalid image scale %v", scale)
	}
	w, h := pixelSize(area, scale)
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	if w > MaxImageSize || h > MaxImageSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, w, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	toPixel := ink.Scale(scale, scale).Multiply(ink.Translate(-area.Min.X, -area.Min.Y))

	r := vector.NewRasterizer(w, h)
	for _, fill := range comp.Fills {
		if len(fill.Polygon) < 3 || fill.Color.A <= 0 {
			continue
		}
		if !ink.NewAabbFromPoints(fill.Polygon...).Intersects(area) {
			continue
		}
		r.Reset(w, h)
		p := toPixel.TransformPoint(fill.Polygon[0])
		r.MoveTo(float32(p.X), float32(p.Y))
		for _, pt := range fill.Polygon[1:] {
			p = toPixel.TransformPoint(pt)
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
		r.Draw(dst, dst.Bounds(), image.NewUniform(fill.Color.NRGBA()), image.Point{})
	}

	if err := drawText(dst, comp.Texts, toPixel, scale); err != nil {
		return nil, err
	}
	return ink.ImageFromRGBA(area, dst), nil
}
