package sound

import (
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

// Effects is the set of sounds the game triggers.
type Effects interface {
	Eat()
	Poison()
	GameOver()
}

// System plays the effect matching each tick's outcome once the tick is done.
// Register it after loop.TickSystem.
type System struct {
	Effects Effects
}

func (s *System) Execute(frame *loop.Frame) {
	if frame.Halted() {
		return
	}

	switch {
	case frame.Terminal:
		frame.Commands.Defer(s.Effects.GameOver)
	case frame.Outcome == snake.OutcomeAte:
		frame.Commands.Defer(s.Effects.Eat)
	case frame.Outcome == snake.OutcomePoisoned:
		frame.Commands.Defer(s.Effects.Poison)
	}
}
