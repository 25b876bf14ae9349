// Package base defines the structural configuration for generated bases.
//
// A Config holds every numeric parameter the generator consumes: footprint,
// taper, wall and floor thicknesses, level geometry, and the sizing constants
// for architectural details (trim, columns, doorways, ramps, the central
// atrium). Configs are plain values; once validated they are treated as
// immutable for the duration of a generation run.
//
// Configs can be loaded from TOML preset files and adjusted with a flat
// override map keyed by field name (unknown keys are ignored).
package base

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/basegen/pkg/errors"
)

// Level count bounds accepted by the generator.
const (
	MinLevels = 2
	MaxLevels = 6
)

// headroom added above the top level when deriving base height from levels.
const roofHeadroom = 8.0

// Config contains all structural parameters for base generation.
type Config struct {
	// Overall size
	BaseWidth  float64 `toml:"base_width"`
	BaseDepth  float64 `toml:"base_depth"`
	BaseHeight float64 `toml:"base_height"`

	// Taper: fraction of base height the silhouette moves inward over the
	// full rise. Must stay below 0.5 or the envelope closes before the top.
	WallTaper float64 `toml:"wall_taper"`

	// Structure
	ExteriorWallThickness float64 `toml:"exterior_wall_thickness"`
	InteriorWallThickness float64 `toml:"interior_wall_thickness"`
	FloorThickness        float64 `toml:"floor_thickness"`

	// Levels
	NumLevels   int     `toml:"num_levels"`
	LevelHeight float64 `toml:"level_height"`

	// Architectural details
	TrimHeight float64 `toml:"trim_height"`
	TrimInset  float64 `toml:"trim_inset"`

	// Columns
	ColumnWidth      float64 `toml:"column_width"`
	ColumnBaseHeight float64 `toml:"column_base_height"`
	ColumnCapHeight  float64 `toml:"column_cap_height"`

	// Platform edges
	PlatformEdgeHeight float64 `toml:"platform_edge_height"`
	PlatformEdgeWidth  float64 `toml:"platform_edge_width"`

	// Doorways
	DoorwayWidth  float64 `toml:"doorway_width"`
	DoorwayHeight float64 `toml:"doorway_height"`

	// Ramps
	RampWidth      float64 `toml:"ramp_width"`
	RampEdgeHeight float64 `toml:"ramp_edge_height"`

	// Skylights
	SkylightSize  float64 `toml:"skylight_size"`
	SkylightDepth float64 `toml:"skylight_depth"`

	// Central atrium
	AtriumWidth float64 `toml:"atrium_width"`
	AtriumDepth float64 `toml:"atrium_depth"`

	// Style
	Style Style `toml:"style"`

	// Seed for the layout random stream.
	Seed uint64 `toml:"seed"`
}

// Default returns a Config with the standard base proportions.
func Default() Config {
	return Config{
		BaseWidth:             80.0,
		BaseDepth:             80.0,
		BaseHeight:            60.0,
		WallTaper:             0.2,
		ExteriorWallThickness: 4.0,
		InteriorWallThickness: 1.5,
		FloorThickness:        1.5,
		NumLevels:             4,
		LevelHeight:           14.0,
		TrimHeight:            0.8,
		TrimInset:             0.3,
		ColumnWidth:           3.0,
		ColumnBaseHeight:      1.5,
		ColumnCapHeight:       1.0,
		PlatformEdgeHeight:    0.6,
		PlatformEdgeWidth:     0.4,
		DoorwayWidth:          8.0,
		DoorwayHeight:         10.0,
		RampWidth:             8.0,
		RampEdgeHeight:        0.5,
		SkylightSize:          4.0,
		SkylightDepth:         1.0,
		AtriumWidth:           28.0,
		AtriumDepth:           28.0,
		Style:                 StylePyramid,
		Seed:                  42,
	}
}

// Load reads a TOML preset file over the default Config.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode preset %s", path)
	}
	return cfg, nil
}

// SetLevels sets the level count and derives the base height from it,
// matching the proportions the layout and composer assume.
func (c *Config) SetLevels(n int) {
	c.NumLevels = n
	c.BaseHeight = float64(n)*c.LevelHeight + roofHeadroom
}

// ApplyOverrides sets numeric fields by name. Keys that do not name an
// overridable field are ignored without error.
func (c *Config) ApplyOverrides(overrides map[string]float64) {
	if len(overrides) == 0 {
		return
	}
	fields := map[string]*float64{
		"base_width":              &c.BaseWidth,
		"base_depth":              &c.BaseDepth,
		"base_height":             &c.BaseHeight,
		"wall_taper":              &c.WallTaper,
		"exterior_wall_thickness": &c.ExteriorWallThickness,
		"interior_wall_thickness": &c.InteriorWallThickness,
		"floor_thickness":         &c.FloorThickness,
		"level_height":            &c.LevelHeight,
		"trim_height":             &c.TrimHeight,
		"trim_inset":              &c.TrimInset,
		"column_width":            &c.ColumnWidth,
		"column_base_height":      &c.ColumnBaseHeight,
		"column_cap_height":       &c.ColumnCapHeight,
		"platform_edge_height":    &c.PlatformEdgeHeight,
		"platform_edge_width":     &c.PlatformEdgeWidth,
		"doorway_width":           &c.DoorwayWidth,
		"doorway_height":          &c.DoorwayHeight,
		"ramp_width":              &c.RampWidth,
		"ramp_edge_height":        &c.RampEdgeHeight,
		"skylight_size":           &c.SkylightSize,
		"skylight_depth":          &c.SkylightDepth,
		"atrium_width":            &c.AtriumWidth,
		"atrium_depth":            &c.AtriumDepth,
	}
	for key, value := range overrides {
		if field, ok := fields[key]; ok {
			*field = value
		}
	}
}

// Validate checks the Config against the generator's structural invariants.
// A Config failing validation must be rejected before any geometry is built.
func (c Config) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"base_width", c.BaseWidth},
		{"base_depth", c.BaseDepth},
		{"base_height", c.BaseHeight},
		{"exterior_wall_thickness", c.ExteriorWallThickness},
		{"interior_wall_thickness", c.InteriorWallThickness},
		{"floor_thickness", c.FloorThickness},
		{"level_height", c.LevelHeight},
		{"column_width", c.ColumnWidth},
		{"ramp_width", c.RampWidth},
		{"atrium_width", c.AtriumWidth},
		{"atrium_depth", c.AtriumDepth},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s must be positive, got %g", d.name, d.value)
		}
	}

	if c.WallTaper < 0 || c.WallTaper >= 0.5 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"wall_taper must be in [0, 0.5), got %g", c.WallTaper)
	}

	if c.NumLevels < MinLevels || c.NumLevels > MaxLevels {
		return errors.New(errors.ErrCodeInvalidLevels,
			"num_levels must be in [%d, %d], got %d", MinLevels, MaxLevels, c.NumLevels)
	}

	if !ValidStyles[c.Style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: pyramid, stepped, tower)", c.Style)
	}

	// The interior must stay open over the full rise. Taper is linear, so
	// checking the top is sufficient.
	topTaper := c.BaseHeight * c.WallTaper
	interiorW := c.BaseWidth - 2*c.ExteriorWallThickness - 2*topTaper
	interiorD := c.BaseDepth - 2*c.ExteriorWallThickness - 2*topTaper
	if interiorW <= 0 || interiorD <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"taper closes the envelope before the top (interior %.1f x %.1f at height %.1f)",
			interiorW, interiorD, c.BaseHeight)
	}

	return nil
}
