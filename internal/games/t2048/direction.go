package t2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists the valid directions in their numeric order.
var Directions = [...]Direction{DirUp, DirRight, DirDown, DirLeft}

// Vector is a unit step on the grid.
type Vector struct {
	X, Y int
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Vector returns the unit vector for the direction. Invalid directions map to
// the zero vector.
func (d Direction) Vector() Vector {
	switch d {
	case DirUp:
		return Vector{X: 0, Y: -1}
	case DirRight:
		return Vector{X: 1, Y: 0}
	case DirDown:
		return Vector{X: 0, Y: 1}
	case DirLeft:
		return Vector{X: -1, Y: 0}
	default:
		return Vector{}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a direction name or a WASD/vim key. "u" and "r" are
// also accepted; "d" and "l" are the WASD and vim keys for right.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "w", "k":
		return DirUp, nil
	case "right", "r", "d", "l":
		return DirRight, nil
	case "down", "s", "j":
		return DirDown, nil
	case "left", "a", "h":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}
