// Package loop drives a snake.GameState: it polls an InputSource once per
// tick, advances the game, hands a snapshot to a Renderer and waits on a
// Pacer for the next tick.
package loop

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/venom/snake"
)

// ErrNoPacer is returned by Run when no Pacer is supplied.
var ErrNoPacer = errors.New("loop: no pacer")

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs its systems once per tick against a single game.
type Scheduler struct {
	state       *snake.GameState
	systems     []System
	systemStats []*systemStatsInternal

	sessionID uuid.UUID
	started   time.Time
	ticks     uint64
	quit      bool
}

// NewScheduler creates a scheduler for the given game.
func NewScheduler(state *snake.GameState) *Scheduler {
	return &Scheduler{
		state:     state,
		systems:   make([]System, 0),
		sessionID: uuid.New(),
	}
}

// State returns the game driven by the scheduler.
func (s *Scheduler) State() *snake.GameState {
	return s.state
}

// Register appends a system; systems execute in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes every registered system for one tick, then flushes the
// frame's deferred commands.
func (s *Scheduler) Once() *Frame {
	if s.started.IsZero() {
		s.started = time.Now()
	}
	frame := newFrame(s.state)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush()

	s.ticks++
	if frame.Quit {
		s.quit = true
	}
	return frame
}

// Run ticks until the game ends, the input asks to quit, a system fails or
// ctx is cancelled. Between ticks it blocks on pacer. Cancellation counts as
// quitting and is not reported as an error.
func (s *Scheduler) Run(ctx context.Context, pacer Pacer) (Result, error) {
	if pacer == nil {
		return s.Result(), ErrNoPacer
	}

	for {
		if ctx.Err() != nil {
			s.quit = true
			return s.Result(), nil
		}

		frame := s.Once()
		if frame.Err != nil {
			return s.Result(), frame.Err
		}
		if frame.Quit || frame.Terminal {
			return s.Result(), nil
		}

		if err := pacer.WaitForNextTick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.quit = true
				return s.Result(), nil
			}
			return s.Result(), err
		}
	}
}

// Result summarises the session so far.
func (s *Scheduler) Result() Result {
	var elapsed time.Duration
	if !s.started.IsZero() {
		elapsed = time.Since(s.started)
	}
	return Result{
		SessionID: s.sessionID,
		Score:     s.state.Score(),
		Ticks:     s.state.Tick(),
		Length:    s.state.Len(),
		Reason:    s.state.EndReason(),
		Terminal:  s.state.Terminal(),
		Quit:      s.quit,
		Duration:  elapsed,
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
