package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", 0, "Stop after this many games; 0 plays until the duration expires.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game n uses seed+n.")
	width := flag.Int("width", snake.DefaultWidth, "Board width in pixels.")
	height := flag.Int("height", snake.DefaultHeight, "Board height in pixels.")
	block := flag.Int("block", snake.DefaultBlockSize, "Size of one grid block in pixels.")
	maxTicks := flag.Uint64("max-ticks", 50000, "Abandon a game that has not ended after this many ticks.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := snake.DefaultConfig()
	cfg.Width, cfg.Height, cfg.BlockSize = *width, *height, *block
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid board: %v", err)
	}

	log.Println("Starting snake stress test...")

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Config:         cfg,
		Seed:           *seed,
		MaxTicks:       *maxTicks,
		GCPauseMetrics: *gcPauseMetrics,
		Reasons:        make(map[string]int),
	}
	systems := newSystemTotals()

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running games for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for n := 0; *games == 0 || n < *games; n++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		cfg.Seed = *seed + uint64(n)
		result, stats, err := playGame(ctx, cfg, *maxTicks, &report.TickTime)
		if err != nil {
			log.Fatalf("Game %d failed: %v", n, err)
		}
		report.Record(result)
		systems.add(stats)
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Systems = systems.list()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Games finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// playGame runs one autopilot game as fast as possible, sampling the
// latency of every tick into tickTime. The result reports Quit when ctx
// ended the game before it finished or reached maxTicks.
func playGame(ctx context.Context, cfg snake.Config, maxTicks uint64, tickTime *Stats) (loop.Result, *loop.SchedulerStats, error) {
	state, err := snake.New(cfg)
	if err != nil {
		return loop.Result{}, nil, err
	}

	scheduler := loop.NewScheduler(state)
	scheduler.Register(&loop.InputSystem{Source: NewAutopilot(state)})
	scheduler.Register(&loop.TickSystem{})
	scheduler.Register(&loop.RenderSystem{Renderer: &discardRenderer{}})

	for state.Tick() < maxTicks && ctx.Err() == nil {
		tickStart := time.Now()
		frame := scheduler.Once()
		tickTime.Samples = append(tickTime.Samples, time.Since(tickStart))

		if frame.Err != nil {
			return scheduler.Result(), nil, frame.Err
		}
		if frame.Terminal {
			break
		}
	}
	result := scheduler.Result()
	// A game still running when the run deadline hits was interrupted, not capped.
	result.Quit = !result.Terminal && state.Tick() < maxTicks
	return result, scheduler.GetStats(), nil
}
