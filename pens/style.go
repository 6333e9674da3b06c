package pens

import "fmt"

// PenStyle selects one of the pens.
type PenStyle int

const (
	StyleBrush PenStyle = iota
	StyleShaper
	StyleTypewriter
	StyleEraser
	StyleSelector
	StyleTools
)

var penStyleNames = [...]string{"brush", "shaper", "typewriter", "eraser", "selector", "tools"}

func (s PenStyle) String() string {
	if s < 0 || int(s) >= len(penStyleNames) {
		return fmt.Sprintf("PenStyle(%d)", int(s))
	}
	return penStyleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s PenStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *PenStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum(penStyleNames[:], string(text), "pen style")
	*s = PenStyle(v)
	return err
}

// ParsePenStyle parses a pen style name.
func ParsePenStyle(name string) (PenStyle, error) {
	var s PenStyle
	err := s.UnmarshalText([]byte(name))
	return s, err
}

// EraserStyle selects what the eraser does with colliding strokes.
type EraserStyle int

const (
	// EraserTrashCollidingStrokes removes whole strokes.
	EraserTrashCollidingStrokes EraserStyle = iota
	// EraserSplitCollidingStrokes cuts strokes and keeps the rest.
	EraserSplitCollidingStrokes
)

var eraserStyleNames = [...]string{"trash-colliding-strokes", "split-colliding-strokes"}

func (s EraserStyle) String() string {
	if s < 0 || int(s) >= len(eraserStyleNames) {
		return fmt.Sprintf("EraserStyle(%d)", int(s))
	}
	return eraserStyleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s EraserStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EraserStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum(eraserStyleNames[:], string(text), "eraser style")
	*s = EraserStyle(v)
	return err
}

// ToolStyle selects the tool of the tools pen.
type ToolStyle int

const (
	ToolVerticalSpace ToolStyle = iota
	ToolOffsetCamera
	ToolZoom
)

var toolStyleNames = [...]string{"vertical-space", "offset-camera", "zoom"}

func (s ToolStyle) String() string {
	if s < 0 || int(s) >= len(toolStyleNames) {
		return fmt.Sprintf("ToolStyle(%d)", int(s))
	}
	return toolStyleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s ToolStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ToolStyle) UnmarshalText(text []byte) error {
	v, err := parseEnum(toolStyleNames[:], string(text), "tool style")
	*s = ToolStyle(v)
	return err
}

// StrokeStyleKind names a stroke style variant in configs.
type StrokeStyleKind int

const (
	StrokeSmooth StrokeStyleKind = iota
	StrokeRough
	StrokeTextured
)

var strokeStyleNames = [...]string{"smooth", "rough", "textured"}

func (k StrokeStyleKind) String() string {
	if k < 0 || int(k) >= len(strokeStyleNames) {
		return fmt.Sprintf("StrokeStyleKind(%d)", int(k))
	}
	return strokeStyleNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k StrokeStyleKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StrokeStyleKind) UnmarshalText(text []byte) error {
	v, err := parseEnum(strokeStyleNames[:], string(text), "stroke style")
	*k = StrokeStyleKind(v)
	return err
}

func parseEnum(names []string, text, what string) (int, error) {
	for i, name := range names {
		if name == text {
			return i, nil
		}
	}
	return 0, fmt.Errorf("pens: unknown %s %q", what, text)
}
