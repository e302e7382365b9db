package snake

import "slices"

// Snapshot is a read-only copy of a GameState for renderers.
type Snapshot struct {
	Tick      uint64
	Width     int
	Height    int
	BlockSize int

	Snake     []Position // head first
	Food      Position
	Poison    Position
	Score     int
	Direction Direction

	Outcome   Outcome
	Terminal  bool
	EndReason EndReason
}

// Snapshot copies the current state. The returned value shares no memory
// with the game.
func (g *GameState) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Width:     g.cfg.Width,
		Height:    g.cfg.Height,
		BlockSize: g.cfg.BlockSize,
		Snake:     slices.Clone(g.body),
		Food:      g.food,
		Poison:    g.poison,
		Score:     g.score,
		Direction: g.direction,
		Outcome:   g.outcome,
		Terminal:  g.terminal,
		EndReason: g.reason,
	}
}

// Cells returns the board size in blocks.
func (s Snapshot) Cells() (cols, rows int) {
	if s.BlockSize <= 0 {
		return 0, 0
	}
	return s.Width / s.BlockSize, s.Height / s.BlockSize
}
