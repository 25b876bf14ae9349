// Package layout implements the seeded decision engine for base generation.
//
// A Generator is constructed from a validated Config. At construction it
// draws a fixed, ordered sequence of topology choices from a PCG random
// stream seeded by the config: corridor pattern, center platform, column
// pattern, ramp style, balcony configuration, side-room count, entrance
// configuration. Identical (config, seed) pairs yield identical choice
// sequences and identical room graphs — determinism is load-bearing here,
// not incidental.
//
// The per-level queries (corridors, columns, ramps, balconies, entrances)
// are pure functions of the drawn Plan and the level index; they never touch
// the random stream again.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/basegen/pkg/base"
)

// Routing constants. The ratios come from the original layout tables and
// are tunable, not derived.
const (
	rampAngleDeg    = 28.0 // inter-level ramp slope
	rampAtriumInset = 6.0  // ramp offset inward from the atrium edge
	cornerRampScale = 0.7  // corner ramps sit at this fraction of the offset

	entranceAngleDeg  = 20.0 // shallower slope for ground entrances
	entranceZFraction = 0.35 // entrance landing height as fraction of a level
	entranceOverlap   = 5.0  // how far the entrance ramp reaches past the wall

	balconyWidthScale  = 0.6 // ring balcony width relative to the envelope
	balconyDepthScale  = 0.5 // side balcony depth relative to the atrium
	balconyCornerScale = 0.8 // corner balcony footprint and placement scale

	columnMargin = 2.0 // gap between columns and the envelope edge

	minPlatformSpan = 4.0 // platforms thinner than this are skipped
)

// streamOffset decorrelates the choice stream from the raw seed.
const streamOffset = 0xdeadbeef

// Generator draws topology choices for one generation run and answers
// per-level layout queries against them.
type Generator struct {
	cfg  base.Config
	plan Plan
}

// New constructs a Generator, drawing the full choice sequence from a
// stream seeded by cfg.Seed.
func New(cfg base.Config) *Generator {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^streamOffset))

	plan := Plan{
		Corridors: CorridorPattern(rng.IntN(6)),
	}

	// Two-in-three chance of a raised center platform, as the original
	// weighted draw had it.
	plan.CenterPlatform = rng.IntN(3) < 2
	if plan.CenterPlatform {
		plan.CenterSize = 8 + rng.Float64()*6
		plan.CenterHeight = 1.5 + rng.Float64()*1.5
	}

	plan.Columns = ColumnPattern(rng.IntN(4))
	plan.Ramps = RampStyle(rng.IntN(4))
	plan.Balconies = BalconyConfig(rng.IntN(4))
	plan.SideRooms = rng.IntN(5)
	plan.Entrances = EntranceConfig(rng.IntN(4))

	return &Generator{cfg: cfg, plan: plan}
}

// Plan returns the drawn topology choices.
func (g *Generator) Plan() Plan { return g.plan }

// CorridorDirections returns which compass directions carry a ground-floor
// corridor under the drawn corridor pattern.
func (g *Generator) CorridorDirections() []base.Direction {
	switch g.plan.Corridors {
	case CorridorCross:
		return []base.Direction{base.North, base.South, base.East, base.West}
	case CorridorTNorth:
		return []base.Direction{base.North, base.East, base.West}
	case CorridorTSouth:
		return []base.Direction{base.South, base.East, base.West}
	case CorridorLNE:
		return []base.Direction{base.North, base.East}
	case CorridorLSW:
		return []base.Direction{base.South, base.West}
	case CorridorH:
		return []base.Direction{base.North, base.South}
	}
	return nil
}

// ColumnPositions returns column offsets relative to the atrium center for
// the available cross-section.
func (g *Generator) ColumnPositions(availW, availD float64) []Point {
	offsetW := availW/2 - g.cfg.ColumnWidth - columnMargin
	offsetD := availD/2 - g.cfg.ColumnWidth - columnMargin
	if offsetW <= 0 || offsetD <= 0 {
		return nil
	}

	switch g.plan.Columns {
	case ColumnsCorners:
		return []Point{
			{offsetW, offsetD}, {offsetW, -offsetD},
			{-offsetW, offsetD}, {-offsetW, -offsetD},
		}
	case ColumnsSides:
		return []Point{
			{offsetW, 0}, {-offsetW, 0}, {0, offsetD}, {0, -offsetD},
		}
	case ColumnsRing:
		return []Point{
			{offsetW, offsetD}, {offsetW, -offsetD},
			{-offsetW, offsetD}, {-offsetW, -offsetD},
			{offsetW, 0}, {-offsetW, 0},
		}
	case ColumnsMinimal:
		return []Point{{offsetW, offsetD}, {-offsetW, -offsetD}}
	}
	return nil
}

// RampRun returns the horizontal run needed to climb rise at the standard
// ramp angle.
func RampRun(rise, angleDeg float64) float64 {
	return rise / math.Tan(angleDeg*math.Pi/180)
}

// RampEndpoints returns the ramp connecting level to level+1. Routing
// rotates or alternates per level according to the drawn ramp style so paths
// stay visually distinct across any number of levels.
func (g *Generator) RampEndpoints(level int) Ramp {
	cfg := g.cfg
	rise := cfg.LevelHeight
	run := RampRun(rise, rampAngleDeg)
	zStart := float64(level+1)*cfg.LevelHeight + cfg.FloorThickness
	zEnd := zStart + rise

	offset := cfg.AtriumWidth/2 - rampAtriumInset

	switch g.plan.Ramps {
	case RampSpiral:
		// Rotate around the atrium: east, north, west, south.
		quadrants := [4]Ramp{
			{offset, -run / 2, zStart, offset, run / 2, zEnd},
			{-run / 2, offset, zStart, run / 2, offset, zEnd},
			{-offset, run / 2, zStart, -offset, -run / 2, zEnd},
			{run / 2, -offset, zStart, -run / 2, -offset, zEnd},
		}
		return quadrants[level%4]

	case RampOpposing:
		if level%2 == 0 {
			return Ramp{offset, -run / 2, zStart, offset, run / 2, zEnd}
		}
		return Ramp{-offset, run / 2, zStart, -offset, -run / 2, zEnd}

	case RampCentral:
		if level%2 == 0 {
			return Ramp{0, -run / 2, zStart, 0, run / 2, zEnd}
		}
		return Ramp{0, run / 2, zStart, 0, -run / 2, zEnd}

	case RampCorner:
		corners := [4]Point{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
		c := corners[level%4]
		co := offset * cornerRampScale
		return Ramp{
			c.X * co, c.Y*co - c.Y*run/2, zStart,
			c.X * co, c.Y*co + c.Y*run/2, zEnd,
		}
	}
	return Ramp{}
}

// BalconyLayout returns the balcony placements for a level given the
// available cross-section. Placements whose platform span falls below the
// usable minimum are omitted entirely.
func (g *Generator) BalconyLayout(level int, availW, availD float64) []BalconyPlacement {
	cfg := g.cfg
	platformW := (availW-cfg.AtriumWidth)/2 - 2
	platformD := (availD-cfg.AtriumDepth)/2 - 2

	if platformW < minPlatformSpan || platformD < minPlatformSpan {
		return nil
	}

	py := availD/2 - platformD/2
	px := availW/2 - platformW/2

	north := BalconyPlacement{0, py, availW * balconyWidthScale, platformD, base.South}
	south := BalconyPlacement{0, -py, availW * balconyWidthScale, platformD, base.North}
	east := BalconyPlacement{px, 0, platformW, cfg.AtriumDepth * balconyDepthScale, base.West}
	west := BalconyPlacement{-px, 0, platformW, cfg.AtriumDepth * balconyDepthScale, base.East}

	switch g.plan.Balconies {
	case BalconiesFullRing:
		return []BalconyPlacement{north, south, east, west}

	case BalconiesOpposing:
		if level%2 == 0 {
			return []BalconyPlacement{north, south}
		}
		return []BalconyPlacement{east, west}

	case BalconiesSingle:
		rotation := []BalconyPlacement{north, south, east, west}
		return rotation[level%4 : level%4+1]

	case BalconiesCorners:
		size := math.Min(platformW, platformD) * balconyCornerScale
		cx, cy := px*balconyCornerScale, py*balconyCornerScale
		return []BalconyPlacement{
			{cx, cy, size, size, base.South},
			{-cx, cy, size, size, base.South},
			{cx, -cy, size, size, base.North},
			{-cx, -cy, size, size, base.North},
		}
	}
	return nil
}

// EntranceLayout returns the ground entrance ramps under the drawn entrance
// configuration. Entrance ramps climb at a shallower angle than interior
// ramps and land just inside the exterior wall.
func (g *Generator) EntranceLayout() []EntrancePlacement {
	cfg := g.cfg
	entranceZ := cfg.LevelHeight * entranceZFraction
	taper := base.TaperAt(entranceZ, cfg)
	wallD := cfg.BaseDepth/2 - taper
	wallW := cfg.BaseWidth/2 - taper
	rampLen := RampRun(entranceZ, entranceAngleDeg)

	south := EntrancePlacement{
		Ramp:   Ramp{0, -(wallD + rampLen), 0, 0, -wallD + entranceOverlap, entranceZ},
		Facing: base.South,
	}
	north := EntrancePlacement{
		Ramp:   Ramp{0, wallD + rampLen, 0, 0, wallD - entranceOverlap, entranceZ},
		Facing: base.North,
	}
	west := EntrancePlacement{
		Ramp:   Ramp{-(wallW + rampLen), 0, 0, -wallW + entranceOverlap, 0, entranceZ},
		Facing: base.West,
	}
	east := EntrancePlacement{
		Ramp:   Ramp{wallW + rampLen, 0, 0, wallW - entranceOverlap, 0, entranceZ},
		Facing: base.East,
	}

	switch g.plan.Entrances {
	case EntrancesNorthSouth:
		return []EntrancePlacement{south, north}
	case EntrancesAllSides:
		return []EntrancePlacement{south, north, west, east}
	case EntrancesSingle:
		return []EntrancePlacement{south}
	case EntrancesDiagonal:
		return []EntrancePlacement{south, east}
	}
	return nil
}
