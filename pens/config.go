package pens

import (
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/stroke"
)

// Config holds the settings of every pen.
type Config struct {
	Brush      BrushConfig      `toml:"brush"`
	Shaper     ShaperConfig     `toml:"shaper"`
	Typewriter TypewriterConfig `toml:"typewriter"`
	Eraser     EraserConfig     `toml:"eraser"`
	Selector   SelectorConfig   `toml:"selector"`
	Tools      ToolsConfig      `toml:"tools"`

	// StylusSecondaryButton is the pen used while the secondary stylus
	// button is held.
	StylusSecondaryButton PenStyle `toml:"stylus_secondary_button"`
}

// DefaultConfig returns the default pen settings.
func DefaultConfig() Config {
	return Config{
		Brush: BrushConfig{
			Style:    StrokeSmooth,
			Smooth:   stroke.Smooth{Width: 2, Color: ink.Black, PressureSensitive: true},
			Rough:    stroke.Rough{Width: 2, Color: ink.Black, Roughness: 1},
			Textured: stroke.Textured{Width: 6, Color: ink.Black, Density: 1},
		},
		Shaper: ShaperConfig{
			Kind:   stroke.ShapeRectangle,
			Style:  StrokeSmooth,
			Smooth: stroke.Smooth{Width: 2, Color: ink.Black},
			Rough:  stroke.Rough{Width: 2, Color: ink.Black, Roughness: 1},
		},
		Typewriter: TypewriterConfig{
			TextStyle:       stroke.DefaultTextStyle(),
			BlinkIntervalMs: 600,
		},
		Eraser: EraserConfig{
			Style:        EraserTrashCollidingStrokes,
			Width:        12,
			SpeedScaling: true,
		},
		Selector: SelectorConfig{
			MinSelectionSize: 2,
		},
		Tools: ToolsConfig{
			Style:               ToolVerticalSpace,
			VerticalSpaceLimitY: true,
			VerticalSpaceLimitX: true,
			VerticalSpaceSnap:   10,
			ZoomDragSensitivity: 200,
		},
		StylusSecondaryButton: StyleEraser,
	}
}

// BrushConfig configures the brush pen.
type BrushConfig struct {
	Style    StrokeStyleKind `toml:"style"`
	Smooth   stroke.Smooth   `toml:"smooth"`
	Rough    stroke.Rough    `toml:"rough"`
	Textured stroke.Textured `toml:"textured"`
}

// StrokeStyle returns the configured style. A rough brush is returned as is
// and rejected when a stroke is started.
func (c BrushConfig) StrokeStyle() stroke.Style {
	switch c.Style {
	case StrokeRough:
		return c.Rough
	case StrokeTextured:
		return c.Textured
	default:
		return c.Smooth
	}
}

// ShaperConfig configures the shaper pen.
type ShaperConfig struct {
	Kind   stroke.ShapeKind `toml:"kind"`
	Style  StrokeStyleKind  `toml:"style"`
	Smooth stroke.Smooth    `toml:"smooth"`
	Rough  stroke.Rough     `toml:"rough"`
}

// StrokeStyle returns the configured style.
func (c ShaperConfig) StrokeStyle() stroke.Style {
	if c.Style == StrokeRough {
		return c.Rough
	}
	return c.Smooth
}

// TypewriterConfig configures the typewriter pen.
type TypewriterConfig struct {
	TextStyle       stroke.TextStyle `toml:"text_style"`
	BlinkIntervalMs int              `toml:"blink_interval_ms"`
}

// BlinkInterval returns the cursor blink interval.
func (c TypewriterConfig) BlinkInterval() time.Duration {
	if c.BlinkIntervalMs <= 0 {
		return 600 * time.Millisecond
	}
	return time.Duration(c.BlinkIntervalMs) * time.Millisecond
}

// EraserConfig configures the eraser pen.
type EraserConfig struct {
	Style EraserStyle `toml:"style"`
	Width float64     `toml:"width"`
	// SpeedScaling grows the eraser with the pointer speed.
	SpeedScaling bool `toml:"speed_scaling"`
}

// SelectorConfig configures the selector pen.
type SelectorConfig struct {
	// MinSelectionSize is the rubber band size below which a press selects
	// the stroke under the pointer instead.
	MinSelectionSize float64 `toml:"min_selection_size"`
}

// ToolsConfig configures the tools pen.
type ToolsConfig struct {
	Style ToolStyle `toml:"style"`
	// VerticalSpaceLimitY stops moved strokes at the end of the page in
	// fixed size documents.
	VerticalSpaceLimitY bool `toml:"vertical_space_limit_y"`
	// VerticalSpaceLimitX only moves strokes of the page column the press
	// happened in.
	VerticalSpaceLimitX bool `toml:"vertical_space_limit_x"`
	// VerticalSpaceSnap is the distance from the press point within which
	// the drag reverts to the start.
	VerticalSpaceSnap float64 `toml:"vertical_space_snap"`
	// ZoomDragSensitivity is the drag distance in surface pixels that
	// zooms by a factor of e.
	ZoomDragSensitivity float64 `toml:"zoom_drag_sensitivity"`
}
