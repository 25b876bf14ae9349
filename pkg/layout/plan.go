package layout

import "github.com/matzehuels/basegen/pkg/base"

// CorridorPattern selects which ground-floor corridors radiate from the
// atrium.
type CorridorPattern int

// Corridor patterns.
const (
	CorridorCross  CorridorPattern = iota // all four directions
	CorridorTNorth                        // north, east, west
	CorridorTSouth                        // south, east, west
	CorridorLNE                           // north, east
	CorridorLSW                           // south, west
	CorridorH                             // north, south
)

var corridorPatternNames = map[CorridorPattern]string{
	CorridorCross:  "cross",
	CorridorTNorth: "T_north",
	CorridorTSouth: "T_south",
	CorridorLNE:    "L_ne",
	CorridorLSW:    "L_sw",
	CorridorH:      "H",
}

func (p CorridorPattern) String() string { return corridorPatternNames[p] }

// ColumnPattern selects where structural columns stand around the atrium.
type ColumnPattern int

// Column patterns.
const (
	ColumnsCorners ColumnPattern = iota
	ColumnsSides
	ColumnsRing
	ColumnsMinimal
)

var columnPatternNames = map[ColumnPattern]string{
	ColumnsCorners: "corners",
	ColumnsSides:   "sides",
	ColumnsRing:    "ring",
	ColumnsMinimal: "minimal",
}

func (p ColumnPattern) String() string { return columnPatternNames[p] }

// RampStyle selects how inter-level ramps are routed.
type RampStyle int

// Ramp styles.
const (
	RampSpiral   RampStyle = iota // rotates around the atrium, level mod 4
	RampOpposing                  // alternates east/west, level mod 2
	RampCentral                   // central axis, alternating direction
	RampCorner                    // rotates through the four corners
)

var rampStyleNames = map[RampStyle]string{
	RampSpiral:   "spiral",
	RampOpposing: "opposing",
	RampCentral:  "central",
	RampCorner:   "corner",
}

func (s RampStyle) String() string { return rampStyleNames[s] }

// BalconyConfig selects the upper-level balcony arrangement.
type BalconyConfig int

// Balcony configurations.
const (
	BalconiesFullRing BalconyConfig = iota
	BalconiesOpposing
	BalconiesSingle
	BalconiesCorners
)

var balconyConfigNames = map[BalconyConfig]string{
	BalconiesFullRing: "full_ring",
	BalconiesOpposing: "opposing",
	BalconiesSingle:   "single",
	BalconiesCorners:  "corners",
}

func (c BalconyConfig) String() string { return balconyConfigNames[c] }

// EntranceConfig selects the ground-level access arrangement.
type EntranceConfig int

// Entrance configurations.
const (
	EntrancesNorthSouth EntranceConfig = iota
	EntrancesAllSides
	EntrancesSingle
	EntrancesDiagonal
)

var entranceConfigNames = map[EntranceConfig]string{
	EntrancesNorthSouth: "north_south",
	EntrancesAllSides:   "all_sides",
	EntrancesSingle:     "single",
	EntrancesDiagonal:   "diagonal",
}

func (c EntranceConfig) String() string { return entranceConfigNames[c] }

// Plan is the full set of topology choices drawn from the seeded stream at
// generator construction, plus the room graph for the room-graph variant.
// A Plan is immutable once the generator is built.
type Plan struct {
	Corridors      CorridorPattern
	CenterPlatform bool
	CenterSize     float64 // drawn only when CenterPlatform is set
	CenterHeight   float64
	Columns        ColumnPattern
	Ramps          RampStyle
	Balconies      BalconyConfig
	SideRooms      int
	Entrances      EntranceConfig
}

// Point is a 2-D offset in the ground plane.
type Point struct {
	X, Y float64
}

// Ramp is a sloped connection between two 3-D points.
type Ramp struct {
	X1, Y1, Z1 float64
	X2, Y2, Z2 float64
}

// BalconyPlacement positions one balcony with its open side facing the
// interior void.
type BalconyPlacement struct {
	X, Y         float64
	Width, Depth float64
	Open         base.Direction
}

// EntrancePlacement positions one ground entrance ramp and the direction it
// faces away from the base.
type EntrancePlacement struct {
	Ramp   Ramp
	Facing base.Direction
}
