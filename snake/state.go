// Package snake implements the game state of a single-screen snake game.
// A GameState is advanced one discrete tick at a time by an external driver;
// it has no notion of wall-clock time and performs no I/O.
package snake

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Outcome describes what the most recent tick did.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeMoved
	OutcomeAte
	OutcomePoisoned
	OutcomeCollided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomePoisoned:
		return "poisoned"
	case OutcomeCollided:
		return "collided"
	}
	return "none"
}

// EndReason records why a game reached its terminal state.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndCollision
	EndStarved
	EndNegativeScore
)

func (r EndReason) String() string {
	switch r {
	case EndCollision:
		return "self-collision"
	case EndStarved:
		return "snake vanished"
	case EndNegativeScore:
		return "negative score"
	}
	return "running"
}

// GameState owns the snake, its heading, the food and poison cells and the
// score. It is not safe for concurrent use.
type GameState struct {
	cfg Config

	direction Direction
	body      []Position // head first
	occupied  *occupancy

	food   Position
	poison Position

	score    int
	terminal bool
	reason   EndReason
	outcome  Outcome
	tick     uint64

	rng *rand.Rand
}

// New creates a game with a three segment snake centred on the board and
// heading right, then places food and poison.
func New(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &GameState{
		cfg:       cfg,
		direction: Right,
		occupied:  newOccupancy(initialLength * 8),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	b := cfg.BlockSize
	head := Position{X: cfg.Columns() / 2 * b, Y: cfg.Rows() / 2 * b}
	g.body = make([]Position, 0, initialLength+1)
	for i := range initialLength {
		g.body = append(g.body, Position{X: head.X - i*b, Y: head.Y})
	}
	g.occupied.reset(g.body)

	g.PlaceFood()
	g.PlacePoison()
	return g, nil
}

// SetDirection overwrites the heading. Turning back into the neck is not
// prevented; the next tick reports it as a self-collision.
func (g *GameState) SetDirection(d Direction) {
	if !d.Valid() {
		return
	}
	g.direction = d
}

// AdvanceTick moves the game forward by one step. When pending is true, d
// replaces the heading before moving. The parameters mirror an input poll so
// a driver can write state.AdvanceTick(input.Poll()).
//
// Once the game is terminal, AdvanceTick leaves the state untouched and
// returns (true, score).
func (g *GameState) AdvanceTick(d Direction, pending bool) (terminal bool, score int) {
	if g.terminal {
		return true, g.score
	}
	if pending {
		g.SetDirection(d)
	}
	g.tick++

	head := g.wrap(g.step(g.body[0], g.direction))

	// Checked against the body as it was before the move, tail included.
	collided := g.occupied.has(head)

	g.body = slices.Insert(g.body, 0, head)
	g.occupied.add(head)

	if collided {
		g.terminal = true
		g.reason = EndCollision
		g.outcome = OutcomeCollided
		return true, g.score
	}

	switch {
	case head == g.food:
		g.score += g.cfg.Reward
		g.outcome = OutcomeAte
		g.PlaceFood()
	case head == g.poison:
		g.score -= g.cfg.Penalty
		g.outcome = OutcomePoisoned
		g.PlacePoison()
		g.popTail()
		g.popTail()
	default:
		g.outcome = OutcomeMoved
		g.popTail()
	}

	switch {
	case len(g.body) == 0:
		g.terminal = true
		g.reason = EndStarved
	case g.score < 0:
		g.terminal = true
		g.reason = EndNegativeScore
	}

	return g.terminal, g.score
}

// NextHead returns the cell the head would enter on a tick heading d. It
// reports false when the body is empty or d is not a direction.
func (g *GameState) NextHead(d Direction) (Position, bool) {
	if len(g.body) == 0 || !d.Valid() {
		return Position{}, false
	}
	return g.wrap(g.step(g.body[0], d)), true
}

func (g *GameState) step(p Position, d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx*g.cfg.BlockSize, Y: p.Y + dy*g.cfg.BlockSize}
}

// wrap re-enters a head that left the board from the opposite edge. The
// wrapped coordinate lands one block outside the board (-B or the full
// width/height) and comes into view on the following tick.
func (g *GameState) wrap(p Position) Position {
	b := g.cfg.BlockSize
	if p.X > g.cfg.Width-b {
		p.X = -b
	} else if p.X < 0 {
		p.X = g.cfg.Width
	}
	if p.Y > g.cfg.Height-b {
		p.Y = -b
	} else if p.Y < 0 {
		p.Y = g.cfg.Height
	}
	return p
}

func (g *GameState) popTail() {
	n := len(g.body)
	if n == 0 {
		return
	}
	g.occupied.remove(g.body[n-1])
	g.body = g.body[:n-1]
}

// Config returns the configuration the game was created with.
func (g *GameState) Config() Config { return g.cfg }

// Direction returns the current heading.
func (g *GameState) Direction() Direction { return g.direction }

// Head returns the first body segment. It reports false once the body is empty.
func (g *GameState) Head() (Position, bool) {
	if len(g.body) == 0 {
		return Position{}, false
	}
	return g.body[0], true
}

// Body returns a head-first copy of the snake segments.
func (g *GameState) Body() []Position { return slices.Clone(g.body) }

// Len returns the number of segments.
func (g *GameState) Len() int { return len(g.body) }

// Occupied reports whether any snake segment covers p.
func (g *GameState) Occupied(p Position) bool { return g.occupied.has(p) }

func (g *GameState) Food() Position       { return g.food }
func (g *GameState) Poison() Position     { return g.poison }
func (g *GameState) Score() int           { return g.score }
func (g *GameState) Terminal() bool       { return g.terminal }
func (g *GameState) EndReason() EndReason { return g.reason }
func (g *GameState) Outcome() Outcome     { return g.outcome }

// Tick returns the number of ticks advanced so far.
func (g *GameState) Tick() uint64 { return g.tick }
