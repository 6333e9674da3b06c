package ink

import (
	"fmt"
	"strings"
)

// Default page format: A4 at 96 DPI.
const (
	FormatA4Width    = 793.7
	FormatA4Height   = 1122.5
	FormatDPIDefault = 96.0
)

// Format is the page size of a document in document-space units.
type Format struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	DPI    float64 `toml:"dpi"`
}

// DefaultFormat returns an A4 portrait page.
func DefaultFormat() Format {
	return Format{Width: FormatA4Width, Height: FormatA4Height, DPI: FormatDPIDefault}
}

// Size returns width and height as a vector.
func (f Format) Size() Point {
	return Pt(f.Width, f.Height)
}

// Layout selects how the document bounds follow content and viewport.
type Layout int

const (
	// LayoutFixedSize rounds content height up to whole pages.
	LayoutFixedSize Layout = iota
	// LayoutContinuousVertical grows vertically with one page of padding.
	LayoutContinuousVertical
	// LayoutSemiInfinite grows rightward and downward only.
	LayoutSemiInfinite
	// LayoutInfinite grows in all four directions.
	LayoutInfinite
)

var layoutNames = [...]string{
	LayoutFixedSize:          "fixed-size",
	LayoutContinuousVertical: "continuous-vertical",
	LayoutSemiInfinite:       "semi-infinite",
	LayoutInfinite:           "infinite",
}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout parses the names produced by Layout.String.
func ParseLayout(s string) (Layout, error) {
	for i, name := range layoutNames {
		if strings.EqualFold(s, name) {
			return Layout(i), nil
		}
	}
	return 0, fmt.Errorf("ink: unknown layout %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
