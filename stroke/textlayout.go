package stroke

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/internal/cache"
)

// Line metrics relative to the font size.
const (
	lineHeightFactor = 1.2
	ascentFactor     = 0.9
	// fallbackAdvance is used per rune when the font cannot be loaded.
	fallbackAdvance = 0.55
)

var (
	fontOnce    sync.Once
	defaultFont *font.Font
	errFont     error

	// HarfbuzzShaper keeps internal buffers and is not safe for concurrent
	// use, so every layout borrows one.
	shaperPool = sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}

	layoutCache = cache.New[layoutKey, TextLayout](256)
)

type layoutKey struct {
	text     string
	fontSize float64
	maxWidth float64
}

// loadFont parses the embedded Go Regular font once.
func loadFont() (*font.Font, error) {
	fontOnce.Do(func() {
		face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			errFont = fmt.Errorf("stroke: parse default font: %w", err)
			return
		}
		defaultFont = face.Font
	})
	return defaultFont, errFont
}

// TextLine is one laid out line. Start and End are rune offsets into the
// text (End exclusive, a trailing newline is not part of the line).
type TextLine struct {
	Start, End int
	// Offsets holds the x position before each rune of the line and after
	// the last one, so len(Offsets) == End-Start+1.
	Offsets []float64
	Width   float64
}

// TextLayout is the result of shaping and wrapping a text.
type TextLayout struct {
	Lines      []TextLine
	LineHeight float64
	Ascent     float64
	Width      float64
	Height     float64
}

// LayoutText shapes text with the default font and wraps it greedily at word
// boundaries so no line exceeds maxWidth. A maxWidth <= 0 disables wrapping.
// Layouts are cached.
func LayoutText(text string, fontSize, maxWidth float64) TextLayout {
	key := layoutKey{text: text, fontSize: fontSize, maxWidth: maxWidth}
	return layoutCache.GetOrCreate(key, func() TextLayout {
		return layoutText(text, fontSize, maxWidth)
	})
}

func layoutText(text string, fontSize, maxWidth float64) TextLayout {
	layout := TextLayout{
		LineHeight: fontSize * lineHeightFactor,
		Ascent:     fontSize * ascentFactor,
	}

	start := 0
	for _, paragraph := range strings.Split(text, "\n") {
		runes := []rune(paragraph)
		advances := runeAdvances(runes, fontSize)
		for _, line := range wrap(runes, advances, maxWidth) {
			line.Start += start
			line.End += start
			layout.Lines = append(layout.Lines, line)
			layout.Width = max(layout.Width, line.Width)
		}
		// skip the newline
		start += len(runes) + 1
	}
	layout.Height = float64(len(layout.Lines)) * layout.LineHeight
	return layout
}

// runeAdvances returns the horizontal advance of every rune. Advances of
// multi-rune clusters (ligatures) are attributed to their first rune.
func runeAdvances(runes []rune, fontSize float64) []float64 {
	advances := make([]float64, len(runes))
	if len(runes) == 0 {
		return advances
	}

	f, err := loadFont()
	if err != nil {
		ink.Logger().Warn("text layout falls back to fixed advances", "err", err)
		for i := range advances {
			advances[i] = fontSize * fallbackAdvance
		}
		return advances
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(fontSize * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	for _, g := range output.Glyphs {
		idx := g.TextIndex()
		if idx >= 0 && idx < len(advances) {
			advances[idx] += float64(g.Advance) / 64
		}
	}
	return advances
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// wrap breaks one paragraph into lines. Offsets are relative to the
// paragraph.
func wrap(runes []rune, advances []float64, maxWidth float64) []TextLine {
	if len(runes) == 0 {
		return []TextLine{{Offsets: []float64{0}}}
	}

	var lines []TextLine
	lineStart := 0
	lastSpace := -1
	x := 0.0
	for i := 0; i < len(runes); i++ {
		if maxWidth > 0 && i > lineStart && x+advances[i] > maxWidth && runes[i] != ' ' {
			breakAt := i
			if lastSpace >= lineStart {
				breakAt = lastSpace + 1
			}
			lines = append(lines, makeLine(lineStart, breakAt, advances))
			lineStart = breakAt
			lastSpace = -1
			x = 0
			for k := lineStart; k < i; k++ {
				x += advances[k]
			}
		}
		if runes[i] == ' ' {
			lastSpace = i
		}
		x += advances[i]
	}
	lines = append(lines, makeLine(lineStart, len(runes), advances))
	return lines
}

func makeLine(start, end int, advances []float64) TextLine {
	offsets := make([]float64, end-start+1)
	for i := start; i < end; i++ {
		offsets[i-start+1] = offsets[i-start] + advances[i]
	}
	return TextLine{Start: start, End: end, Offsets: offsets, Width: offsets[len(offsets)-1]}
}

// CaretPosition returns the top of the caret before rune index idx, relative
// to the text origin.
func (l TextLayout) CaretPosition(idx int) ink.Point {
	if len(l.Lines) == 0 {
		return ink.Point{}
	}
	for i, line := range l.Lines {
		if idx >= line.Start && idx <= line.End {
			// Prefer the start of the next line at a soft wrap boundary.
			if idx == line.End && i+1 < len(l.Lines) && l.Lines[i+1].Start == idx {
				continue
			}
			return ink.Pt(line.Offsets[idx-line.Start], float64(i)*l.LineHeight)
		}
	}
	last := l.Lines[len(l.Lines)-1]
	return ink.Pt(last.Width, float64(len(l.Lines)-1)*l.LineHeight)
}
