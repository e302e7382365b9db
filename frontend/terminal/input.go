package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

// Input turns tcell key events into direction commands. Events are read on
// a separate goroutine; only the latest command is kept for the next poll.
type Input struct {
	loop.CommandSlot

	screen tcell.Screen
	done   chan struct{}
}

func NewInput(screen tcell.Screen) *Input {
	return &Input{
		screen: screen,
		done:   make(chan struct{}),
	}
}

// Start reads events until the screen is finalized.
func (in *Input) Start() {
	go func() {
		defer close(in.done)
		for {
			ev := in.screen.PollEvent()
			if ev == nil {
				return
			}
			in.HandleEvent(ev)
		}
	}()
}

// Done is closed once the event goroutine has exited.
func (in *Input) Done() <-chan struct{} {
	return in.done
}

// HandleEvent applies a single event. Keys without a binding are ignored.
func (in *Input) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if quitKey(ev) {
			in.RequestQuit()
			return
		}
		if d, ok := keyDirection(ev); ok {
			in.Offer(d)
		}
	case *tcell.EventResize:
		in.screen.Sync()
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func keyDirection(ev *tcell.EventKey) (snake.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return snake.Up, true
	case tcell.KeyDown:
		return snake.Down, true
	case tcell.KeyLeft:
		return snake.Left, true
	case tcell.KeyRight:
		return snake.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			return snake.Up, true
		case 'j', 's':
			return snake.Down, true
		case 'h', 'a':
			return snake.Left, true
		case 'l', 'd':
			return snake.Right, true
		}
	}
	return 0, false
}
