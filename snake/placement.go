package snake

// PlaceFood moves the food to a random free cell and returns it.
func (g *GameState) PlaceFood() Position {
	if p, ok := g.randomFreeCell(); ok {
		g.food = p
	}
	return g.food
}

// PlacePoison moves the poison to a random free cell and returns it. Poison
// is placed independently of the food and may share its cell.
func (g *GameState) PlacePoison() Position {
	if p, ok := g.randomFreeCell(); ok {
		g.poison = p
	}
	return g.poison
}

// randomFreeCell samples block-aligned cells uniformly until one is not
// covered by the snake. It reports false only when every cell is covered.
func (g *GameState) randomFreeCell() (Position, bool) {
	cols, rows := g.cfg.Columns(), g.cfg.Rows()
	if g.occupied.distinct() >= cols*rows && !g.hasFreeCell() {
		return Position{}, false
	}

	b := g.cfg.BlockSize
	for {
		p := Position{X: g.rng.IntN(cols) * b, Y: g.rng.IntN(rows) * b}
		if !g.occupied.has(p) {
			return p, true
		}
	}
}

func (g *GameState) hasFreeCell() bool {
	b := g.cfg.BlockSize
	for y := 0; y < g.cfg.Height; y += b {
		for x := 0; x < g.cfg.Width; x += b {
			if !g.occupied.has(Position{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}
