package loop

import (
	"context"
	"fmt"

	"github.com/plus3/venom/snake"
)

// InputSource yields at most one direction command per poll. Poll must not
// block; when several commands arrived since the last poll only the most
// recent is returned.
type InputSource interface {
	Poll() (snake.Direction, bool)
	Quit() bool
}

// Renderer draws a snapshot of the game.
type Renderer interface {
	Draw(snap snake.Snapshot) error
}

// Pacer blocks until the next tick is due.
type Pacer interface {
	WaitForNextTick(ctx context.Context) error
}

// InputSystem polls Source and stores the command and quit request on the frame.
type InputSystem struct {
	Source InputSource
}

func (s *InputSystem) Execute(frame *Frame) {
	if s.Source.Quit() {
		frame.Quit = true
		return
	}
	frame.Direction, frame.Pending = s.Source.Poll()
}

// TickSystem advances the game with the command gathered by InputSystem.
type TickSystem struct{}

func (s *TickSystem) Execute(frame *Frame) {
	if frame.Halted() {
		return
	}
	frame.Terminal, frame.Score = frame.State.AdvanceTick(frame.Direction, frame.Pending)
	frame.Outcome = frame.State.Outcome()
}

// RenderSystem hands a snapshot of the game to Renderer.
type RenderSystem struct {
	Renderer Renderer
}

func (s *RenderSystem) Execute(frame *Frame) {
	if frame.Halted() {
		return
	}
	if err := s.Renderer.Draw(frame.State.Snapshot()); err != nil {
		frame.Fail(fmt.Errorf("loop: draw tick %d: %w", frame.Tick, err))
	}
}
