package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/engine"
	"github.com/gogpu/ink/pens"
)

var (
	// ErrUnknownEvent is returned for steps naming an event, key, shortcut
	// or action that does not exist.
	ErrUnknownEvent = errors.New("scenario: unknown event")
	// ErrInvalidScenario is returned for structurally broken scenarios.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")
)

// Scenario is a replayable input recording.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Layout      string     `yaml:"layout,omitempty"`
	Format      *ink.Point `yaml:"format,omitempty"`
	Viewport    *ink.Point `yaml:"viewport,omitempty"`
	Pen         string     `yaml:"pen,omitempty"`
	Steps       []Step     `yaml:"steps"`
}

// Step is one entry of a scenario. Exactly one of Event, Pen and Action is
// set.
type Step struct {
	// At is the time of the step in milliseconds since the scenario start.
	At int64 `yaml:"at"`

	// Event is one of down, up, proximity, key, text or cancel.
	Event     string   `yaml:"event,omitempty"`
	X         float64  `yaml:"x,omitempty"`
	Y         float64  `yaml:"y,omitempty"`
	Pressure  *float64 `yaml:"pressure,omitempty"`
	Key       string   `yaml:"key,omitempty"`
	Text      string   `yaml:"text,omitempty"`
	Shortcuts []string `yaml:"shortcuts,omitempty"`

	// Pen switches the active pen.
	Pen string `yaml:"pen,omitempty"`

	// Action is one of undo, redo, zoom, offset or resize-to-fit. Zoom uses
	// Zoom, offset uses X and Y.
	Action string  `yaml:"action,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty"`
}

// Kind describes the step for reports, e.g. "event down" or "pen eraser".
func (s Step) Kind() string {
	switch {
	case s.Event != "":
		return "event " + s.Event
	case s.Pen != "":
		return "pen " + s.Pen
	default:
		return "action " + s.Action
	}
}

var keyNames = map[string]ink.KeyboardKey{
	"backspace": ink.KeyBackSpace,
	"delete":    ink.KeyDelete,
	"escape":    ink.KeyEscape,
	"enter":     ink.KeyEnter,
	"tab":       ink.KeyTab,
	"left":      ink.KeyArrowLeft,
	"right":     ink.KeyArrowRight,
	"up":        ink.KeyArrowUp,
	"down":      ink.KeyArrowDown,
	"home":      ink.KeyHome,
	"end":       ink.KeyEnd,
}

var shortcutNames = map[string]ink.ShortcutKey{
	"stylus-primary":   ink.ShortcutStylusPrimaryButton,
	"stylus-secondary": ink.ShortcutStylusSecondaryButton,
	"mouse-secondary":  ink.ShortcutMouseSecondaryButton,
	"shift":            ink.ShortcutKeyboardShift,
	"ctrl":             ink.ShortcutKeyboardCtrl,
	"alt":              ink.ShortcutKeyboardAlt,
}

// PenEvent converts an event step. It fails for pen and action steps.
func (s Step) PenEvent() (ink.PenEvent, error) {
	shortcuts, err := parseShortcuts(s.Shortcuts)
	if err != nil {
		return nil, err
	}
	pressure := ink.PressureDefault
	if s.Pressure != nil {
		pressure = *s.Pressure
	}
	el := ink.NewElement(ink.Pt(s.X, s.Y), pressure)

	switch s.Event {
	case "down":
		return ink.DownEvent{Element: el, Shortcuts: shortcuts}, nil
	case "up":
		return ink.UpEvent{Element: el, Shortcuts: shortcuts}, nil
	case "proximity":
		return ink.ProximityEvent{Element: el, Shortcuts: shortcuts}, nil
	case "cancel":
		return ink.CancelEvent{}, nil
	case "text":
		return ink.TextEvent{Text: s.Text}, nil
	case "key":
		return parseKey(s.Key, shortcuts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, s.Event)
}

// parseKey accepts the names in keyNames and single characters.
func parseKey(name string, shortcuts ink.Shortcuts) (ink.PenEvent, error) {
	if key, ok := keyNames[name]; ok {
		return ink.KeyPressedEvent{Key: key, Shortcuts: shortcuts}, nil
	}
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError && size == len(name) {
		return ink.KeyPressedEvent{Key: ink.KeyUnicode, Rune: r, Shortcuts: shortcuts}, nil
	}
	return nil, fmt.Errorf("%w: key %q", ErrUnknownEvent, name)
}

func parseShortcuts(names []string) (ink.Shortcuts, error) {
	var out ink.Shortcuts
	for _, name := range names {
		key, ok := shortcutNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: shortcut %q", ErrUnknownEvent, name)
		}
		out = append(out, key)
	}
	return out, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario without running it.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidScenario)
	}
	if s.Layout != "" {
		if _, err := ink.ParseLayout(s.Layout); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	}
	if s.Pen != "" {
		if _, err := pens.ParsePenStyle(s.Pen); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	}
	var last int64
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if step.At < last {
			return fmt.Errorf("%w: step %d goes back in time", ErrInvalidScenario, i)
		}
		last = step.At
	}
	return nil
}

func (s Step) validate() error {
	set := 0
	for _, v := range []string{s.Event, s.Pen, s.Action} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: exactly one of event, pen and action must be set", ErrInvalidScenario)
	}
	switch {
	case s.Event != "":
		_, err := s.PenEvent()
		return err
	case s.Pen != "":
		_, err := pens.ParsePenStyle(s.Pen)
		return err
	}
	switch s.Action {
	case "undo", "redo", "zoom", "offset", "resize-to-fit":
		return nil
	}
	return fmt.Errorf("%w: action %q", ErrUnknownEvent, s.Action)
}

// Config applies the document setup of the scenario to base.
func (s *Scenario) Config(base engine.Config) (engine.Config, error) {
	cfg := base
	if s.Layout != "" {
		layout, err := ink.ParseLayout(s.Layout)
		if err != nil {
			return cfg, err
		}
		cfg.Document.Layout = layout
	}
	if s.Format != nil {
		cfg.Document.Format.Width = s.Format.X
		cfg.Document.Format.Height = s.Format.Y
	}
	if s.Viewport != nil {
		cfg.Viewport = *s.Viewport
	}
	if s.Pen != "" {
		style, err := pens.ParsePenStyle(s.Pen)
		if err != nil {
			return cfg, err
		}
		cfg.PenStyle = style
	}
	return cfg, cfg.Validate()
}
