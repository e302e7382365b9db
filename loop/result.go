package loop

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/venom/snake"
)

// Result describes a finished or interrupted session.
type Result struct {
	SessionID uuid.UUID
	Score     int
	Ticks     uint64
	Length    int
	Reason    snake.EndReason
	Terminal  bool
	Quit      bool
	Duration  time.Duration
}
