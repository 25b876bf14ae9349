// Package compose turns a config and a drawn layout into named mesh parts.
//
// The Composer walks the base in a fixed order: exterior shell, ground-floor
// main hall, radiating corridors, upper levels, inter-level ramps, ground
// entrances. Each stage appends to its own mesh.Builder so downstream sinks
// can tag parts with different surface styles. Geometry that will not fit
// the tapered envelope at a given height is skipped with a debug log entry,
// never an error; the only failure mode is an invalid config, and that is
// caught before a Composer is constructed.
package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/basegen/pkg/base"
	"github.com/matzehuels/basegen/pkg/layout"
	"github.com/matzehuels/basegen/pkg/mesh"
)

// Part names, stable across runs. Sinks key surface styles off these.
const (
	PartExterior  = "Exterior"
	PartMainHall  = "MainHall"
	PartCorridors = "Corridors"
	PartUpper     = "Upper"
	PartRamps     = "Ramps"
	PartEntrances = "Entrances"
)

// Exterior silhouette proportions per style. Tunables from the original
// style tables, not derived quantities.
const (
	steppedTiers     = 4
	steppedTierStep  = 0.18 // each tier shrinks by this fraction of the footprint
	steppedTierTaper = 0.04 // additional inward lean within one tier

	towerBaseSplit        = 0.35 // fraction of total height taken by the wide base
	towerBaseBottomScale  = 1.2
	towerBaseTopScale     = 1.1
	towerShaftBottomScale = 0.6
	towerShaftTopScale    = 0.5
)

// Interior detailing proportions.
const (
	hallColumnLevels = 2.0 // main-hall columns span this many level heights

	stepCount = 3   // step runs up to the raised center platform
	stepDepth = 2.0 // tread depth of each step

	panelWidth  = 6.0 // main-hall wall panels
	panelHeight = 8.0
	panelLift   = 2.0 // panel bottom above the hall floor
	panelRecess = 0.5
	panelFrame  = 0.5
	panelInset  = 0.5 // panel distance inward from the hall perimeter

	corridorWidth     = 10.0
	corridorTrimBands = 3

	upperColumnShrink = 0.15 // per-level column scale reduction

	balconyRailHeight    = 3.0
	balconyRailThickness = 0.4

	ceilingDrop      = 2.0 // ceiling sits this far below the level top
	ceilingSpanScale = 0.8 // ceiling covers this fraction of the atrium
	ceilingThickness = 1.5
	wellGridSize     = 3 // skylight wells per axis on the top level

	rampThickness      = 0.5
	entranceThickness  = 1.0
	entranceExtraWidth = 2.0 // entrance ramps are wider than interior ramps
	landingSpan        = 8.0
	landingInset       = 3.0 // landing center offset inward from the ramp end
)

// Composer emits the mesh parts for one generation run.
type Composer struct {
	cfg    base.Config
	layout *layout.Generator
	logger *log.Logger
}

// New returns a Composer over a validated config and its layout generator.
// A nil logger silences composition logging.
func New(cfg base.Config, gen *layout.Generator, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Composer{cfg: cfg, layout: gen, logger: logger}
}

// Compose builds all parts in generation order. Parts are always present
// and named, though a part's builder may be empty when the layout left it
// nothing to emit.
func (c *Composer) Compose() []*mesh.Builder {
	parts := []*mesh.Builder{
		c.buildExterior(),
		c.buildMainHall(),
		c.buildCorridors(),
		c.buildUpperLevels(),
		c.buildRamps(),
		c.buildEntrances(),
	}
	for _, p := range parts {
		c.logger.Debug("composed part", "name", p.Name,
			"verts", p.VertexCount(), "faces", p.FaceCount())
	}
	return parts
}

// buildExterior emits the style-specific outer shell.
func (c *Composer) buildExterior() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartExterior)

	taper := cfg.BaseHeight * cfg.WallTaper
	topW := cfg.BaseWidth - taper*2
	topD := cfg.BaseDepth - taper*2

	switch cfg.Style {
	case base.StylePyramid:
		b.AddTaperedShell(cfg.BaseWidth, cfg.BaseDepth, topW, topD,
			cfg.BaseHeight, cfg.ExteriorWallThickness, 0)

	case base.StyleStepped:
		tierH := cfg.BaseHeight / steppedTiers
		for t := 0; t < steppedTiers; t++ {
			scale := 1.0 - float64(t)*steppedTierStep
			topScale := scale - steppedTierTaper
			b.AddTaperedShell(
				cfg.BaseWidth*scale, cfg.BaseDepth*scale,
				cfg.BaseWidth*topScale, cfg.BaseDepth*topScale,
				tierH, cfg.ExteriorWallThickness, float64(t)*tierH)
		}

	case base.StyleTower:
		baseH := cfg.BaseHeight * towerBaseSplit
		b.AddTaperedShell(
			cfg.BaseWidth*towerBaseBottomScale, cfg.BaseDepth*towerBaseBottomScale,
			cfg.BaseWidth*towerBaseTopScale, cfg.BaseDepth*towerBaseTopScale,
			baseH, cfg.ExteriorWallThickness, 0)
		b.AddTaperedShell(
			cfg.BaseWidth*towerShaftBottomScale, cfg.BaseDepth*towerShaftBottomScale,
			cfg.BaseWidth*towerShaftTopScale, cfg.BaseDepth*towerShaftTopScale,
			cfg.BaseHeight-baseH, cfg.ExteriorWallThickness, baseH)
	}
	return b
}

// buildMainHall emits the ground-floor atrium: main platform, optional
// raised center podium with step runs, columns, and perimeter wall panels.
func (c *Composer) buildMainHall() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartMainHall)
	z := cfg.FloorThickness

	b.AddPlatform(0, 0, z, cfg.AtriumWidth, cfg.AtriumDepth,
		cfg.FloorThickness, cfg.PlatformEdgeHeight, cfg.PlatformEdgeWidth)

	plan := c.layout.Plan()
	if plan.CenterPlatform {
		size, height := plan.CenterSize, plan.CenterHeight
		b.AddPlatform(0, 0, z+height, size, size, 1.0, 0.5, 0.3)

		stepW := size + 2
		stepH := height / stepCount
		for i := 0; i < stepCount; i++ {
			stepY := size/2 + 1 + float64(i)*stepDepth
			b.AddBox(0, -stepY, z+float64(i)*stepH, stepW, stepDepth, stepH)
			b.AddBox(0, stepY, z+float64(i)*stepH, stepW, stepDepth, stepH)
		}
	}

	colTop := z + cfg.LevelHeight*hallColumnLevels
	for _, p := range c.layout.ColumnPositions(cfg.AtriumWidth, cfg.AtriumDepth) {
		b.AddColumn(p.X, p.Y, z, colTop, cfg.ColumnWidth,
			cfg.ColumnBaseHeight, cfg.ColumnCapHeight)
	}

	panelZ := z + panelLift
	for _, px := range []float64{-cfg.AtriumWidth / 4, cfg.AtriumWidth / 4} {
		b.AddWallPanel(px, cfg.AtriumDepth/2-panelInset, panelZ,
			panelWidth, panelHeight, base.South, panelRecess, panelFrame)
		b.AddWallPanel(px, -cfg.AtriumDepth/2+panelInset, panelZ,
			panelWidth, panelHeight, base.North, panelRecess, panelFrame)
	}
	return b
}

// buildCorridors emits a floored, walled corridor for each direction the
// layout chose, running from the atrium edge to just inside the exterior
// wall.
func (c *Composer) buildCorridors() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartCorridors)
	z := cfg.FloorThickness

	for _, dir := range c.layout.CorridorDirections() {
		switch dir {
		case base.North, base.South:
			length := (cfg.BaseDepth-cfg.AtriumDepth)/2 - cfg.ExteriorWallThickness
			sign := 1.0
			if dir == base.South {
				sign = -1.0
			}
			corrY := sign * (cfg.AtriumDepth/2 + length/2)
			b.AddPlatform(0, corrY, z, corridorWidth, length,
				cfg.FloorThickness, 0.4, 0.3)

			wallX := corridorWidth / 2
			y1 := sign * cfg.AtriumDepth / 2
			y2 := sign * (cfg.AtriumDepth/2 + length)
			c.corridorWall(b, -wallX, y1, -wallX, y2, z)
			c.corridorWall(b, wallX, y1, wallX, y2, z)

		case base.East, base.West:
			length := (cfg.BaseWidth-cfg.AtriumWidth)/2 - cfg.ExteriorWallThickness
			sign := 1.0
			if dir == base.West {
				sign = -1.0
			}
			corrX := sign * (cfg.AtriumWidth/2 + length/2)
			b.AddPlatform(corrX, 0, z, length, corridorWidth,
				cfg.FloorThickness, 0.4, 0.3)

			wallY := corridorWidth / 2
			x1 := sign * cfg.AtriumWidth / 2
			x2 := sign * (cfg.AtriumWidth/2 + length)
			c.corridorWall(b, x1, -wallY, x2, -wallY, z)
			c.corridorWall(b, x1, wallY, x2, wallY, z)
		}
	}
	return b
}

func (c *Composer) corridorWall(b *mesh.Builder, x1, y1, x2, y2, z float64) {
	cfg := c.cfg
	b.AddWallRun(x1, y1, x2, y2, z, cfg.LevelHeight,
		cfg.InteriorWallThickness, cfg.TrimHeight, cfg.TrimInset, corridorTrimBands)
}

// buildUpperLevels emits per-level balconies and columns inside the tapered
// envelope, plus the skylight ceiling on the top level. Levels whose
// interior has closed below the usable minimum are skipped.
func (c *Composer) buildUpperLevels() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartUpper)

	for level := 1; level < cfg.NumLevels; level++ {
		z := float64(level)*cfg.LevelHeight + cfg.FloorThickness
		env := base.EnvelopeAt(z, cfg)

		if !env.Usable() {
			c.logger.Debug("skipping level, envelope too tight",
				"level", level, "width", env.InteriorWidth, "depth", env.InteriorDepth)
			continue
		}

		balconies := c.layout.BalconyLayout(level, env.InteriorWidth, env.InteriorDepth)
		if len(balconies) == 0 {
			c.logger.Debug("no balconies fit", "level", level)
		}
		for _, bal := range balconies {
			b.AddBalcony(bal.X, bal.Y, z, bal.Width, bal.Depth, bal.Open,
				balconyRailHeight, balconyRailThickness, cfg.FloorThickness)
		}

		if level < cfg.NumLevels-1 {
			scale := 1.0 - float64(level)*upperColumnShrink
			for _, p := range c.layout.ColumnPositions(env.InteriorWidth, env.InteriorDepth) {
				b.AddColumn(p.X*scale, p.Y*scale, z, z+cfg.LevelHeight,
					cfg.ColumnWidth*scale,
					cfg.ColumnBaseHeight*scale, cfg.ColumnCapHeight*scale)
			}
		}

		if level == cfg.NumLevels-1 {
			ceilingZ := z + cfg.LevelHeight - ceilingDrop
			b.AddCeilingWithWells(0, 0, ceilingZ,
				cfg.AtriumWidth*ceilingSpanScale, cfg.AtriumDepth*ceilingSpanScale,
				ceilingThickness, cfg.SkylightSize, cfg.SkylightDepth,
				wellGridSize, wellGridSize)
		}
	}
	return b
}

// buildRamps emits one inter-level ramp per floor transition, numLevels-1
// in total.
func (c *Composer) buildRamps() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartRamps)

	for level := 0; level < cfg.NumLevels-1; level++ {
		r := c.layout.RampEndpoints(level)
		b.AddRamp(r.X1, r.Y1, r.Z1, r.X2, r.Y2, r.Z2,
			cfg.RampWidth, rampThickness, cfg.RampEdgeHeight)
	}
	return b
}

// buildEntrances emits the ground entrance ramps with landing platforms
// just inside the wall.
func (c *Composer) buildEntrances() *mesh.Builder {
	cfg := c.cfg
	b := mesh.NewBuilder(PartEntrances)

	for _, e := range c.layout.EntranceLayout() {
		r := e.Ramp
		b.AddRamp(r.X1, r.Y1, r.Z1, r.X2, r.Y2, r.Z2,
			cfg.RampWidth+entranceExtraWidth, entranceThickness, cfg.RampEdgeHeight)

		lx, ly := r.X2, r.Y2
		lw, ld := cfg.RampWidth+6, landingSpan
		switch e.Facing {
		case base.South:
			ly += landingInset
		case base.North:
			ly -= landingInset
		case base.East:
			lx -= landingInset
			lw, ld = landingSpan, cfg.RampWidth+6
		case base.West:
			lx += landingInset
			lw, ld = landingSpan, cfg.RampWidth+6
		}
		b.AddPlatform(lx, ly, r.Z2, lw, ld, 1.0, 0.5, 0.3)
	}
	return b
}
