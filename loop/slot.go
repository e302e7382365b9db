package loop

import (
	"sync"

	"github.com/plus3/venom/snake"
)

// CommandSlot holds the latest direction command for input sources that
// receive events on another goroutine. Offering overwrites any command not
// yet taken, so commands never queue across ticks.
type CommandSlot struct {
	mu        sync.Mutex
	direction snake.Direction
	pending   bool
	quit      bool
}

// Offer replaces the waiting command with d.
func (c *CommandSlot) Offer(d snake.Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.direction = d
	c.pending = true
}

// Poll takes the waiting command, if any.
func (c *CommandSlot) Poll() (snake.Direction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.direction, c.pending
	c.pending = false
	return d, ok
}

// RequestQuit makes every later Quit call report true.
func (c *CommandSlot) RequestQuit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.quit = true
}

func (c *CommandSlot) Quit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.quit
}
