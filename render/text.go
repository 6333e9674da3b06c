// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

var (
	fontOnce sync.Once
	textFont *opentype.Font
	errFont  error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		textFont, errFont = opentype.Parse(goregular.TTF)
		if errFont != nil {
			errFont = fmt.Errorf("render: parse default font: %w", errFont)
		}
	})
	return textFont, errFont
}

// drawText draws text runs with their baseline origins mapped by toPixel.
func drawText(dst *image.RGBA, runs []stroke.TextRun, toPixel ink.Matrix, scale float64) error {
	if len(runs) == 0 {
		return nil
	}
	f, err := loadFont()
	if err != nil {
		return err
	}

	for _, run := range runs {
		size := run.FontSize * scale
		if run.Text == "" || size <= 0 {
			continue
		}
		// opentype faces keep glyph buffers and are not safe to share
		// between workers.
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return fmt.Errorf("render: create face: %w", err)
		}

		origin := toPixel.TransformPoint(run.Origin)
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(run.Color.NRGBA()),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(origin.X * 64), Y: fixed.Int26_6(origin.Y * 64)},
		}
		d.DrawString(run.Text)
		_ = face.Close()
	}
	return nil
}
