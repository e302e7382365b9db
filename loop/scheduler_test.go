package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGame returns a seeded game whose food and poison are not in the first
// few cells ahead of the snake, so scripted ticks stay plain moves.
func newGame(t testing.TB) *snake.GameState {
	t.Helper()

	cfg := snake.DefaultConfig()
	for seed := uint64(11); ; seed++ {
		cfg.Seed = seed
		game, err := snake.New(cfg)
		require.NoError(t, err)

		head, _ := game.Head()
		if game.Food().Y != head.Y && game.Poison().Y != head.Y {
			return game
		}
	}
}

type command struct {
	dir snake.Direction
	ok  bool
}

// scriptedInput replays commands one poll at a time, then reports nothing.
type scriptedInput struct {
	commands  []command
	quitAfter int
	polls     int
}

func (s *scriptedInput) Poll() (snake.Direction, bool) {
	s.polls++
	if len(s.commands) == 0 {
		return 0, false
	}
	c := s.commands[0]
	s.commands = s.commands[1:]
	return c.dir, c.ok
}

func (s *scriptedInput) Quit() bool {
	return s.quitAfter > 0 && s.polls >= s.quitAfter
}

type recordingRenderer struct {
	snaps []snake.Snapshot
	err   error
}

func (r *recordingRenderer) Draw(snap snake.Snapshot) error {
	r.snaps = append(r.snaps, snap)
	return r.err
}

type countingPacer struct {
	waits int
}

func (p *countingPacer) WaitForNextTick(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(frame *loop.Frame) {
	*s.log = append(*s.log, s.name)
	frame.Commands.Defer(func() {
		*s.log = append(*s.log, "deferred "+s.name)
	})
}

type sleepSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepSystem) Execute(frame *loop.Frame) {
	s.executeCount++
	time.Sleep(s.sleepDur)
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in order before deferred commands", func(t *testing.T) {
		var log []string
		scheduler := loop.NewScheduler(newGame(t))
		scheduler.Register(&orderSystem{name: "a", log: &log})
		scheduler.Register(&orderSystem{name: "b", log: &log})

		frame := scheduler.Once()

		assert.Equal(t, []string{"a", "b", "deferred a", "deferred b"}, log)
		assert.Equal(t, uint64(1), frame.Tick)
	})

	t.Run("one tick per Once", func(t *testing.T) {
		game := newGame(t)
		scheduler := loop.NewScheduler(game)
		scheduler.Register(&loop.InputSystem{Source: &scriptedInput{}})
		scheduler.Register(&loop.TickSystem{})

		scheduler.Once()
		frame := scheduler.Once()

		assert.Equal(t, uint64(2), game.Tick())
		assert.Equal(t, uint64(2), frame.Tick)
		assert.Equal(t, game.Score(), frame.Score)
		assert.Equal(t, game.Outcome(), frame.Outcome)
	})

	t.Run("input command reaches the game", func(t *testing.T) {
		game := newGame(t)
		input := &scriptedInput{commands: []command{{snake.Down, true}}}
		scheduler := loop.NewScheduler(game)
		scheduler.Register(&loop.InputSystem{Source: input})
		scheduler.Register(&loop.TickSystem{})

		scheduler.Once()

		assert.Equal(t, snake.Down, game.Direction())
	})

	t.Run("run stops on terminal state", func(t *testing.T) {
		game := newGame(t)
		renderer := &recordingRenderer{}
		pacer := &countingPacer{}

		scheduler := loop.NewScheduler(game)
		scheduler.Register(&loop.InputSystem{Source: &scriptedInput{
			commands: []command{{}, {}, {snake.Left, true}},
		}})
		scheduler.Register(&loop.TickSystem{})
		scheduler.Register(&loop.RenderSystem{Renderer: renderer})

		result, err := scheduler.Run(context.Background(), pacer)

		require.NoError(t, err)
		assert.True(t, result.Terminal)
		assert.False(t, result.Quit)
		assert.Equal(t, snake.EndCollision, result.Reason)
		assert.Equal(t, uint64(3), result.Ticks)
		assert.Equal(t, 2, pacer.waits)
		require.Len(t, renderer.snaps, 3)
		assert.True(t, renderer.snaps[2].Terminal)
		assert.NotEqual(t, uuid.Nil, result.SessionID)
	})

	t.Run("run stops when input quits", func(t *testing.T) {
		game := newGame(t)
		renderer := &recordingRenderer{}

		scheduler := loop.NewScheduler(game)
		scheduler.Register(&loop.InputSystem{Source: &scriptedInput{quitAfter: 2}})
		scheduler.Register(&loop.TickSystem{})
		scheduler.Register(&loop.RenderSystem{Renderer: renderer})

		result, err := scheduler.Run(context.Background(), &countingPacer{})

		require.NoError(t, err)
		assert.True(t, result.Quit)
		assert.False(t, result.Terminal)
		assert.Equal(t, uint64(2), game.Tick())
		assert.Len(t, renderer.snaps, 2)
	})

	t.Run("render failure ends run", func(t *testing.T) {
		boom := errors.New("boom")
		scheduler := loop.NewScheduler(newGame(t))
		scheduler.Register(&loop.TickSystem{})
		scheduler.Register(&loop.RenderSystem{Renderer: &recordingRenderer{err: boom}})

		_, err := scheduler.Run(context.Background(), &countingPacer{})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing pacer", func(t *testing.T) {
		scheduler := loop.NewScheduler(newGame(t))

		_, err := scheduler.Run(context.Background(), nil)

		assert.ErrorIs(t, err, loop.ErrNoPacer)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		game := newGame(t)
		scheduler := loop.NewScheduler(game)
		scheduler.Register(&loop.InputSystem{Source: &scriptedInput{}})
		ticks := &sleepSystem{}
		scheduler.Register(ticks)

		ctx, cancel := context.WithCancel(context.Background())
		pacer := loop.NewTicker(1000)
		defer pacer.Stop()

		type outcome struct {
			result loop.Result
			err    error
		}
		done := make(chan outcome)
		go func() {
			result, err := scheduler.Run(ctx, pacer)
			done <- outcome{result, err}
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case out := <-done:
			assert.NoError(t, out.err)
			assert.True(t, out.result.Quit)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if ticks.executeCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler(newGame(t))

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	sys1 := &sleepSystem{sleepDur: 1 * time.Millisecond}
	sys2 := &sleepSystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	scheduler.Once()
	scheduler.Once()
	scheduler.Once()

	stats = scheduler.GetStats()

	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(3), stats.Ticks)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	for _, sysStats := range stats.Systems {
		assert.Equal(t, "sleepSystem", sysStats.Name)
		assert.Equal(t, int64(3), sysStats.ExecutionCount)
		assert.NotZero(t, sysStats.MinDuration)
		assert.NotZero(t, sysStats.LastDuration)
		assert.LessOrEqual(t, sysStats.MinDuration, sysStats.AvgDuration)
		assert.LessOrEqual(t, sysStats.AvgDuration, sysStats.MaxDuration)
	}

	assert.Equal(t, 3, sys1.executeCount)
	assert.Equal(t, 3, sys2.executeCount)
}

func TestCommandSlot(t *testing.T) {
	var slot loop.CommandSlot

	_, ok := slot.Poll()
	assert.False(t, ok)

	slot.Offer(snake.Up)
	slot.Offer(snake.Left)

	d, ok := slot.Poll()
	assert.True(t, ok)
	assert.Equal(t, snake.Left, d, "latest command wins")

	_, ok = slot.Poll()
	assert.False(t, ok, "commands do not carry over to the next tick")

	assert.False(t, slot.Quit())
	slot.RequestQuit()
	assert.True(t, slot.Quit())
}

func TestTickerCancellation(t *testing.T) {
	ticker := loop.NewTicker(1)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ticker.WaitForNextTick(ctx), context.Canceled)
}
