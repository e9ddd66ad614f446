package gridphysics

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal movement directions, or None when idle.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the movable directions in input priority order.
var Directions = []Direction{Up, Down, Left, Right}

var movementDirectionVectors = map[Direction][2]int{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Vector returns the unit grid offset for the direction. None maps to (0, 0).
func (d Direction) Vector() (dx, dy int) {
	v := movementDirectionVectors[d]
	return v[0], v[1]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection converts a name such as "up" or "LEFT" into a Direction.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown direction: %q", name)
}
