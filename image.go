package ink

import (
	"image"
	"image/draw"
)

// Image is a rendered piece of a stroke. Bounds are in document space; the
// pixel buffer covers Bounds at the image scale it was rendered with.
type Image struct {
	Bounds Aabb
	Width  int
	Height int
	// Data holds premultiplied RGBA, 4 bytes per pixel, row-major.
	Data []uint8
}

// NewImage allocates an empty image of the given pixel size covering bounds.
func NewImage(bounds Aabb, width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Bounds: bounds,
		Width:  width,
		Height: height,
		Data:   make([]uint8, width*height*4),
	}
}

// ImageFromRGBA wraps a rasterised buffer. The pixel data is not copied.
func ImageFromRGBA(bounds Aabb, img *image.RGBA) *Image {
	b := img.Bounds()
	if img.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		img = dst
	}
	return &Image{Bounds: bounds, Width: b.Dx(), Height: b.Dy(), Data: img.Pix}
}

// ToRGBA returns a view of the image as *image.RGBA sharing the pixel data.
func (img *Image) ToRGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Data,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Translate moves the image's document-space bounds without touching pixels.
func (img *Image) Translate(offset Point) {
	img.Bounds = img.Bounds.Translate(offset)
}

// IsEmpty reports whether the image holds no pixels.
func (img *Image) IsEmpty() bool {
	return img == nil || img.Width == 0 || img.Height == 0
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	out := *img
	out.Data = append([]uint8(nil), img.Data...)
	return &out
}
