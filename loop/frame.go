package loop

import "github.com/plus3/venom/snake"

// Frame is the per-tick scratch space shared by the systems of a Scheduler.
type Frame struct {
	// Tick is the number of the tick being executed, starting at 1.
	Tick  uint64
	State *snake.GameState

	// Direction is the command polled for this tick; Pending reports whether
	// there was one.
	Direction snake.Direction
	Pending   bool
	Quit      bool

	Outcome  snake.Outcome
	Terminal bool
	Score    int

	// Err holds the first error raised by a system.
	Err error

	Commands *Commands
}

func newFrame(state *snake.GameState) *Frame {
	return &Frame{
		Tick:     state.Tick() + 1,
		State:    state,
		Outcome:  state.Outcome(),
		Terminal: state.Terminal(),
		Score:    state.Score(),
		Commands: newCommands(),
	}
}

// Fail records err unless an earlier system already failed.
func (f *Frame) Fail(err error) {
	if err != nil && f.Err == nil {
		f.Err = err
	}
}

// Halted reports whether later systems should skip their work.
func (f *Frame) Halted() bool {
	return f.Quit || f.Err != nil
}

// Commands buffers work that must run after every system of the tick has
// executed.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run once the tick's systems are done.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the queued functions in order and empties the buffer.
func (c *Commands) Flush() {
	for _, fn := range c.defers {
		fn()
	}
	c.defers = c.defers[:0]
}
