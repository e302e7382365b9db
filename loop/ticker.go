package loop

import (
	"context"
	"time"
)

// DefaultTPS is the default tick rate of the game.
const DefaultTPS = 20

// Ticker paces ticks with a time.Ticker.
type Ticker struct {
	ticker *time.Ticker
}

// NewTicker creates a pacer firing tps times per second. Non-positive
// values fall back to DefaultTPS.
func NewTicker(tps int) *Ticker {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Ticker{ticker: time.NewTicker(time.Second / time.Duration(tps))}
}

func (t *Ticker) WaitForNextTick(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

// Stop releases the underlying ticker.
func (t *Ticker) Stop() {
	t.ticker.Stop()
}
