package dotfield

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// EngineConfig describes the grid, viewport, and dirty partition an Engine
// is built with. The zero value is not usable; start from
// DefaultEngineConfig or a TOML file.
type EngineConfig struct {
	// Rows and Cols are the lattice dimensions.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// Spacing is the lattice pitch in pixels.
	Spacing float64 `toml:"spacing"`

	// DotSize is the dot radius at rest, in pixels.
	DotSize float64 `toml:"dot_size"`

	// Viewport is the screen-space rectangle covered by the dirty partition.
	Viewport Rect `toml:"viewport"`

	// RegionRows and RegionCols size the dirty partition. Zero means the
	// package defaults (20x20).
	RegionRows int `toml:"region_rows"`
	RegionCols int `toml:"region_cols"`

	// FadeInDuration ramps newly registered effects in over this many
	// seconds. Zero registers effects at full strength.
	FadeInDuration float32 `toml:"fade_in_duration"`

	// DotColor is the default tint for unaffected dots.
	DotColor Color `toml:"dot_color"`

	// ClearColor is the background painted under each dirty region before
	// its dots repaint.
	ClearColor Color `toml:"clear_color"`
}

// DefaultEngineConfig returns a 40x40 grid at 20px spacing filling an
// 800x800 viewport with the default 20x20 dirty partition.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rows:       40,
		Cols:       40,
		Spacing:    20,
		DotSize:    3,
		Viewport:   Rect{Width: 800, Height: 800},
		DotColor:   Color{R: 0.55, G: 0.55, B: 0.62, A: 1},
		ClearColor: Color{R: 0.098, G: 0.098, B: 0.137, A: 1},
	}
}

// Validate reports the first problem that would make the configuration
// unusable. Degenerate-but-harmless values (zero effects, tiny grids) pass.
func (c EngineConfig) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("dotfield: grid dimensions %dx%d must be positive", c.Rows, c.Cols)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("dotfield: spacing %v must be positive", c.Spacing)
	}
	if c.Viewport.IsEmpty() {
		return fmt.Errorf("dotfield: viewport must have area")
	}
	return nil
}

// LoadEngineConfig parses a TOML engine configuration. Fields absent from
// the document keep their DefaultEngineConfig values.
func LoadEngineConfig(tomlData []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := toml.Unmarshal(tomlData, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}
