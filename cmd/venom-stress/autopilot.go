package main

import (
	"math"

	"github.com/plus3/venom/snake"
)

var directions = [...]snake.Direction{snake.Up, snake.Down, snake.Left, snake.Right}

// Autopilot is an InputSource that greedily steers toward the food while
// avoiding its own body and the poison. It does not plan ahead, so it still
// traps itself on crowded boards.
type Autopilot struct {
	state *snake.GameState
}

func NewAutopilot(state *snake.GameState) *Autopilot {
	return &Autopilot{state: state}
}

func (a *Autopilot) Poll() (snake.Direction, bool) {
	food, poison := a.state.Food(), a.state.Poison()

	best, bestCost, found := a.state.Direction(), math.MaxInt, false
	for _, d := range directions {
		next, ok := a.state.NextHead(d)
		if !ok {
			continue
		}

		cost := manhattan(next, food)
		if a.state.Occupied(next) {
			cost += 1 << 30
		}
		if next == poison {
			cost += 1 << 20
		}
		if cost < bestCost {
			best, bestCost, found = d, cost, true
		}
	}
	return best, found
}

func (a *Autopilot) Quit() bool { return false }

func manhattan(a, b snake.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// discardRenderer counts snapshots without drawing them, so the stress run
// still pays for taking a snapshot every tick.
type discardRenderer struct {
	frames   int64
	segments int64
}

func (r *discardRenderer) Draw(snap snake.Snapshot) error {
	r.frames++
	r.segments += int64(len(snap.Snake))
	return nil
}
