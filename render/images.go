// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"math"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

// TileSize is the largest pixel edge of one generated image. Strokes that
// cover more of the viewport are split into several images.
const TileSize = 1024

// GenImages renders the part of s that lies inside viewport at the given
// image scale. It returns no images if the stroke is not visible. The stroke
// is only read, callers hand in a clone when the store may mutate it.
func GenImages(ctx context.Context, s stroke.Stroke, viewport ink.Aabb, scale float64) ([]*ink.Image, error) {
	area, ok := s.Bounds().Intersection(viewport)
	if !ok || area.Width() <= 0 || area.Height() <= 0 {
		return nil, nil
	}
	comp, err := s.Compose()
	if err != nil {
		return nil, err
	}
	return RasterizeTiled(ctx, comp, area, scale)
}

// RasterizeTiled rasterizes area as a grid of images no larger than TileSize
// pixels. It stops early with ctx.Err() when the context is done.
func RasterizeTiled(ctx context.Context, comp stroke.Composition, area ink.Aabb, scale float64) ([]*ink.Image, error) {
	tiles := Tiles(area, scale)
	images := make([]*ink.Image, 0, len(tiles))
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := Rasterize(comp, tile, scale)
		if err != nil {
			return nil, err
		}
		if !img.IsEmpty() {
			images = append(images, img)
		}
	}
	return images, nil
}

// Tiles splits area into boxes that rasterize to at most TileSize pixels
// per edge.
func Tiles(area ink.Aabb, scale float64) []ink.Aabb {
	if scale <= 0 {
		return nil
	}
	step := TileSize / scale
	nx := max(int(math.Ceil(area.Width()/step)), 1)
	ny := max(int(math.Ceil(area.Height()/step)), 1)

	tiles := make([]ink.Aabb, 0, nx*ny)
	for iy := range ny {
		for ix := range nx {
			lo := ink.Pt(area.Min.X+float64(ix)*step, area.Min.Y+float64(iy)*step)
			hi := ink.Pt(
				math.Min(lo.X+step, area.Max.X),
				math.Min(lo.Y+step, area.Max.Y),
			)
			tiles = append(tiles, ink.Aabb{Min: lo, Max: hi})
		}
	}
	return tiles
}
