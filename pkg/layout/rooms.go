package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/basegen/pkg/base"
)

// RoomKind tags the role of a room in the base's floor plan.
type RoomKind int

// Room kinds.
const (
	KindMainHall RoomKind = iota
	KindCorridor
	KindSideChamber
	KindEquipmentRoom
	KindStairwell
	KindBalcony
)

var roomKindNames = map[RoomKind]string{
	KindMainHall:      "main_hall",
	KindCorridor:      "corridor",
	KindSideChamber:   "side_chamber",
	KindEquipmentRoom: "equipment_room",
	KindStairwell:     "stairwell",
	KindBalcony:       "balcony",
}

func (k RoomKind) String() string { return roomKindNames[k] }

// Room is one node in the base's connectivity graph. Rooms receive
// sequential ids during generation and are never mutated afterwards except
// to record connections; once GenerateRooms returns, the whole set is
// read-only.
type Room struct {
	ID          int
	Kind        RoomKind
	X, Y, Z     float64
	Width       float64
	Depth       float64
	Height      float64
	Level       int
	Connections []int
}

// Connected reports whether the room records a connection to id.
func (r *Room) Connected(id int) bool {
	return slices.Contains(r.Connections, id)
}

// connect records a symmetric edge between two rooms.
func connect(a, b *Room) {
	if a.ID == b.ID || a.Connected(b.ID) {
		return
	}
	a.Connections = append(a.Connections, b.ID)
	b.Connections = append(b.Connections, a.ID)
}

// Room sizing constants, kept as tunables rather than derived values.
const (
	sideChamberSpan   = 10.0
	equipmentRoomSpan = 8.0
	alcoveSpan        = 7.0
	roomCorridorWidth = 10.0
	ringChamberScale  = 0.85 // middle-floor chamber span relative to side chamber
	topBalconyScale   = 0.7  // top-floor balcony span relative to the atrium

	// verticalLinkRange is the horizontal center distance within which rooms
	// on adjacent levels are considered vertically connected.
	verticalLinkRange = 10.0
)

// GenerateRooms builds the per-level room graph: a ground floor with the
// main hall and radiating corridors, chambers, and equipment rooms; middle
// floors with a ring corridor around the atrium plus optional side
// chambers; a top floor with a command room, balconies, and alcoves.
// Afterwards, a vertical pass links rooms on adjacent levels whose
// horizontal centers fall within verticalLinkRange.
//
// The result is deterministic per (config, seed): a dedicated sub-stream is
// derived from the seed, so repeated calls return identical graphs.
func (g *Generator) GenerateRooms() []*Room {
	cfg := g.cfg
	rng := rand.New(rand.NewPCG(cfg.Seed^streamOffset, cfg.Seed))

	var rooms []*Room
	add := func(kind RoomKind, x, y, z, w, d, h float64, level int) *Room {
		r := &Room{
			ID: len(rooms), Kind: kind,
			X: x, Y: y, Z: z,
			Width: w, Depth: d, Height: h,
			Level: level,
		}
		rooms = append(rooms, r)
		return r
	}

	top := cfg.NumLevels - 1

	// Ground floor: main hall with radiating corridors and rooms.
	hall := add(KindMainHall, 0, 0, cfg.FloorThickness,
		cfg.AtriumWidth, cfg.AtriumDepth, cfg.LevelHeight, 0)

	env := base.EnvelopeAt(cfg.FloorThickness, cfg)
	for _, dir := range g.CorridorDirections() {
		length := corridorLength(dir, env, cfg)
		if length < minPlatformSpan {
			continue
		}
		cx, cy := corridorCenter(dir, length, cfg)
		var corrW, corrD float64
		if dir == base.North || dir == base.South {
			corrW, corrD = roomCorridorWidth, length
		} else {
			corrW, corrD = length, roomCorridorWidth
		}
		corridor := add(KindCorridor, cx, cy, cfg.FloorThickness, corrW, corrD, cfg.LevelHeight, 0)
		connect(hall, corridor)

		// Each corridor ends in a chamber or an equipment room.
		span := sideChamberSpan
		kind := KindSideChamber
		if rng.IntN(2) == 0 {
			span = equipmentRoomSpan
			kind = KindEquipmentRoom
		}
		ex, ey := roomBeyond(dir, cx, cy, length/2+span/2)
		end := add(kind, ex, ey, cfg.FloorThickness, span, span, cfg.LevelHeight, 0)
		connect(corridor, end)
	}

	// Extra side chambers attach straight to the hall.
	for i := 0; i < g.plan.SideRooms; i++ {
		dir := base.Directions[rng.IntN(4)]
		offset := cfg.AtriumWidth/2 + sideChamberSpan/2 + 1
		x, y := roomBeyond(dir, 0, 0, offset)
		// Stagger duplicates along the wall instead of stacking them.
		shift := float64(i) * (sideChamberSpan + 2)
		if dir == base.North || dir == base.South {
			x += shift - float64(g.plan.SideRooms-1)*(sideChamberSpan+2)/2
		} else {
			y += shift - float64(g.plan.SideRooms-1)*(sideChamberSpan+2)/2
		}
		chamber := add(KindSideChamber, x, y, cfg.FloorThickness,
			sideChamberSpan, sideChamberSpan, cfg.LevelHeight, 0)
		connect(hall, chamber)
	}

	// Middle floors: ring corridor around the void plus optional chambers.
	for level := 1; level < top; level++ {
		z := float64(level)*cfg.LevelHeight + cfg.FloorThickness
		env := base.EnvelopeAt(z, cfg)
		if !env.Usable() {
			continue
		}

		ring := add(KindCorridor, 0, 0, z, env.InteriorWidth, env.InteriorDepth, cfg.LevelHeight, level)

		span := sideChamberSpan * ringChamberScale
		chambers := rng.IntN(5) // up to four
		for i := 0; i < chambers && i < 4; i++ {
			dir := base.Directions[i]
			offset := env.InteriorWidth/2 - span/2
			if dir == base.North || dir == base.South {
				offset = env.InteriorDepth/2 - span/2
			}
			if offset < span/2 {
				continue
			}
			x, y := roomBeyond(dir, 0, 0, offset)
			chamber := add(KindSideChamber, x, y, z, span, span, cfg.LevelHeight, level)
			connect(ring, chamber)
		}

		// Stairwell room at the ramp landing keeps traversal explicit.
		ramp := g.RampEndpoints(level - 1)
		stair := add(KindStairwell, (ramp.X1+ramp.X2)/2, (ramp.Y1+ramp.Y2)/2, z,
			cfg.RampWidth, cfg.RampWidth, cfg.LevelHeight, level)
		connect(ring, stair)
	}

	// Top floor: command room, balconies, alcoves.
	if top >= 1 {
		z := float64(top)*cfg.LevelHeight + cfg.FloorThickness
		env := base.EnvelopeAt(z, cfg)
		if env.Usable() {
			command := add(KindMainHall, 0, 0, z,
				math.Min(cfg.AtriumWidth, env.InteriorWidth),
				math.Min(cfg.AtriumDepth, env.InteriorDepth),
				cfg.LevelHeight, top)

			balconies := rng.IntN(3) // up to two
			for i := 0; i < balconies; i++ {
				dir := base.Directions[i]
				span := cfg.AtriumWidth * topBalconyScale
				x, y := roomBeyond(dir, 0, 0, command.Depth/2+span/4)
				b := add(KindBalcony, x, y, z, span, span/2, cfg.LevelHeight/2, top)
				connect(command, b)
			}

			alcoves := rng.IntN(3) // up to two
			for i := 0; i < alcoves; i++ {
				dir := base.Directions[2+i] // east/west, clear of balconies
				x, y := roomBeyond(dir, 0, 0, command.Width/2+alcoveSpan/2)
				a := add(KindSideChamber, x, y, z, alcoveSpan, alcoveSpan, cfg.LevelHeight, top)
				connect(command, a)
			}
		}
	}

	linkVertical(rooms)
	return rooms
}

// linkVertical adds an edge between any two rooms on adjacent levels whose
// horizontal centers lie within verticalLinkRange. This is the only
// cross-level connectivity rule.
func linkVertical(rooms []*Room) {
	for i, a := range rooms {
		for _, b := range rooms[i+1:] {
			if b.Level-a.Level != 1 && a.Level-b.Level != 1 {
				continue
			}
			if math.Hypot(a.X-b.X, a.Y-b.Y) <= verticalLinkRange {
				connect(a, b)
			}
		}
	}
}

// ReachableFrom returns the number of rooms reachable from the room with
// the given id via breadth-first traversal of the connection graph.
func ReachableFrom(rooms []*Room, id int) int {
	if id < 0 || id >= len(rooms) {
		return 0
	}
	seen := make([]bool, len(rooms))
	queue := []int{id}
	seen[id] = true
	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		count++
		for _, next := range rooms[cur].Connections {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return count
}

// Connected reports whether every room is reachable from the ground-floor
// main hall.
func Connected(rooms []*Room) bool {
	if len(rooms) == 0 {
		return true
	}
	return ReachableFrom(rooms, 0) == len(rooms)
}

// corridorLength returns how far a corridor can run from the atrium edge to
// the interior face of the exterior wall.
func corridorLength(dir base.Direction, env base.Envelope, cfg base.Config) float64 {
	if dir == base.North || dir == base.South {
		return (env.InteriorDepth - cfg.AtriumDepth) / 2
	}
	return (env.InteriorWidth - cfg.AtriumWidth) / 2
}

// corridorCenter returns the center of a corridor extending from the atrium
// edge in the given direction.
func corridorCenter(dir base.Direction, length float64, cfg base.Config) (x, y float64) {
	switch dir {
	case base.North:
		return 0, cfg.AtriumDepth/2 + length/2
	case base.South:
		return 0, -(cfg.AtriumDepth/2 + length/2)
	case base.East:
		return cfg.AtriumWidth/2 + length/2, 0
	case base.West:
		return -(cfg.AtriumWidth/2 + length/2), 0
	}
	return 0, 0
}

// roomBeyond returns a point moved dist outward from (x, y) in dir.
func roomBeyond(dir base.Direction, x, y, dist float64) (float64, float64) {
	switch dir {
	case base.North:
		return x, y + dist
	case base.South:
		return x, y - dist
	case base.East:
		return x + dist, y
	case base.West:
		return x - dist, y
	}
	return x, y
}
