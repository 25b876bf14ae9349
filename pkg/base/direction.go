package base

// Direction is a compass direction in the base's ground plane.
// North is +Y, east is +X.
type Direction string

// Compass directions.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists all four compass directions in a fixed order.
var Directions = []Direction{North, South, East, West}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}
