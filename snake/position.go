package snake

import (
	"fmt"
	"strings"
)

// Position is a board coordinate in pixels. Positions produced by the game
// are always multiples of the block size.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the heading of the snake.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d <= Right
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Delta returns the unit offset of one step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection maps a command name such as "left" to its Direction.
// Unknown names report false and should be ignored by the caller.
func ParseDirection(name string) (Direction, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), true
		}
	}
	return 0, false
}
