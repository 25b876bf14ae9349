// Package pipeline provides the core generation pipeline for basegen.
//
// This package implements the complete layout → compose → finalize → render
// pipeline shared by the CLI and the HTTP server. Centralizing it keeps
// behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Layout: draw the seeded topology choices and the room graph
//  2. Compose: emit the named mesh parts for the drawn layout
//  3. Finalize: weld and orient each part, tag surfaces
//  4. Render: export artifacts in the requested formats (OBJ, JSON, DOT, SVG)
//
// # Usage
//
// Run the pipeline through a Runner for artifact caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Style:  "pyramid",
//	    Levels: 4,
//	})
//
// or call [Generate] directly when caching is not wanted.
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/basegen/pkg/base"
	"github.com/matzehuels/basegen/pkg/cache"
	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/layout"
	"github.com/matzehuels/basegen/pkg/sink"
)

// Defaults shared by CLI, API, and library callers.
const (
	// DefaultStyle is the exterior style used when none is requested.
	DefaultStyle = "pyramid"

	// DefaultLevels is the floor count used when none is requested.
	DefaultLevels = 4

	// timeSeedModulus keeps time-derived seeds short enough to read back
	// and retype from a summary line.
	timeSeedModulus = 100000
)

// Format constants for output formats.
const (
	FormatOBJ  = "obj"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats. DOT and SVG export
// the room graph; OBJ and JSON export geometry.
var ValidFormats = map[string]bool{
	FormatOBJ:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for a generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Style selects the exterior silhouette: pyramid, stepped, or tower.
	Style string `json:"style,omitempty"`

	// Seed drives every layout decision. A nil seed means "pick one":
	// a time-derived seed is substituted and reported in Result.Seed.
	Seed *uint64 `json:"seed,omitempty"`

	// Levels is the floor count, 2 to 6.
	Levels int `json:"levels,omitempty"`

	// Overrides adjusts individual numeric config fields by TOML key name.
	// Unknown keys are ignored.
	Overrides map[string]float64 `json:"overrides,omitempty"`

	// Formats lists the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// Config optionally replaces the default structural parameters,
	// typically loaded from a TOML preset. Style, seed, levels, and
	// overrides are applied on top of it.
	Config *base.Config `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Config is the fully resolved configuration the run used.
	Config base.Config

	// Seed is the seed actually used, echoing a time-derived pick.
	Seed uint64

	// Plan is the drawn topology choice set.
	Plan layout.Plan

	// Rooms is the generated room connectivity graph.
	Rooms []*layout.Room

	// Handles maps part names to their finalized mesh handles.
	Handles map[string]sink.Handle

	// Store gives access to the finalized meshes behind the handles.
	Store *sink.Store

	// Artifacts contains rendered outputs keyed by format. An OBJ render
	// also fills the companion "mtl" entry.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	FaceCount   int
	RoomCount   int
	LayoutTime  time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits per rendered format.
type CacheInfo struct {
	ArtifactHits map[string]bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: obj, json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if _, err := base.ParseStyle(o.Style); err != nil {
		return err
	}

	if o.Levels == 0 {
		o.Levels = DefaultLevels
	}
	if o.Levels < base.MinLevels || o.Levels > base.MaxLevels {
		return errors.New(errors.ErrCodeInvalidLevels,
			"levels must be between %d and %d, got %d", base.MinLevels, base.MaxLevels, o.Levels)
	}

	if o.Seed == nil {
		seed := uint64(time.Now().Unix()) % timeSeedModulus
		o.Seed = &seed
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatOBJ}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	o.validated = true
	return nil
}

// BuildConfig resolves the run's full configuration: preset or defaults,
// then style, levels, seed, and overrides, then validation.
func (o *Options) BuildConfig() (base.Config, error) {
	cfg := base.Default()
	if o.Config != nil {
		cfg = *o.Config
	}

	style, err := base.ParseStyle(o.Style)
	if err != nil {
		return base.Config{}, err
	}
	cfg.Style = style
	cfg.SetLevels(o.Levels)
	cfg.ApplyOverrides(o.Overrides)
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}

	if err := cfg.Validate(); err != nil {
		return base.Config{}, err
	}
	return cfg, nil
}

// Hash returns the content hash of everything that determines this run's
// output, for artifact cache keys.
func (o *Options) Hash() string {
	payload := struct {
		Style     string             `json:"style"`
		Seed      *uint64            `json:"seed"`
		Levels    int                `json:"levels"`
		Overrides map[string]float64 `json:"overrides,omitempty"`
		Config    *base.Config       `json:"config,omitempty"`
	}{o.Style, o.Seed, o.Levels, o.Overrides, o.Config}

	data, _ := json.Marshal(payload)
	return cache.Hash(data)
}
