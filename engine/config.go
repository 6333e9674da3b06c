package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/pens"
	"github.com/gogpu/ink/store"
)

// ErrInvalidConfig is returned for configs that cannot drive an engine.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config holds every setting of an engine.
type Config struct {
	Document ink.DocumentConfig `toml:"document"`
	// Viewport is the initial surface size.
	Viewport ink.Point `toml:"viewport"`
	// ScaleFactor is the device pixel ratio of the surface.
	ScaleFactor float64 `toml:"scale_factor"`

	// Workers is the number of render workers, 0 uses GOMAXPROCS.
	Workers       int `toml:"workers"`
	HistoryLength int `toml:"history_length"`

	PenStyle pens.PenStyle `toml:"pen_style"`
	Pens     pens.Config   `toml:"pens"`
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{
		Document:      ink.DefaultDocumentConfig(),
		Viewport:      ink.Pt(800, 600),
		ScaleFactor:   1,
		HistoryLength: store.DefaultHistoryLength,
		PenStyle:      pens.StyleBrush,
		Pens:          pens.DefaultConfig(),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Document.Format.Width <= 0 || c.Document.Format.Height <= 0:
		return fmt.Errorf("%w: page format %gx%g", ErrInvalidConfig, c.Document.Format.Width, c.Document.Format.Height)
	case c.Viewport.X < 0 || c.Viewport.Y < 0:
		return fmt.Errorf("%w: viewport %v", ErrInvalidConfig, c.Viewport)
	case c.ScaleFactor <= 0:
		return fmt.Errorf("%w: scale factor %g", ErrInvalidConfig, c.ScaleFactor)
	case c.Workers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.Workers)
	case c.HistoryLength < 1:
		return fmt.Errorf("%w: history length %d", ErrInvalidConfig, c.HistoryLength)
	case c.Pens.Eraser.Width <= 0:
		return fmt.Errorf("%w: eraser width %g", ErrInvalidConfig, c.Pens.Eraser.Width)
	}
	return nil
}

// LoadConfig reads a TOML config. Settings missing from r keep their
// default values, unknown settings are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a TOML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: reading config: %w", err)
	}
	return LoadConfig(bytes.NewReader(data))
}

// TOML encodes the config as TOML.
func (c Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("engine: encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
