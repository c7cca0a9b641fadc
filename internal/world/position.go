package world

// Position is a cell on the grid. X grows to the right, Y grows downward.
type Position struct {
	X int
	Y int
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Step returns the neighbouring position in direction d.
// ok is false for an unknown direction.
func (p Position) Step(d Direction) (next Position, ok bool) {
	switch d {
	case DirUp:
		return Position{p.X, p.Y - 1}, true
	case DirDown:
		return Position{p.X, p.Y + 1}, true
	case DirLeft:
		return Position{p.X - 1, p.Y}, true
	case DirRight:
		return Position{p.X + 1, p.Y}, true
	}
	return p, false
}

// Direction is one of the movement keys.
type Direction byte

const (
	DirUp    Direction = 'w'
	DirLeft  Direction = 'a'
	DirDown  Direction = 's'
	DirRight Direction = 'd'
)

// ParseDirection maps a movement key to a Direction.
func ParseDirection(c byte) (Direction, bool) {
	switch d := Direction(c); d {
	case DirUp, DirLeft, DirDown, DirRight:
		return d, true
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
