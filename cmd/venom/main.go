package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
	"github.com/plus3/venom/sound"
)

// gameOverLinger keeps the process alive long enough for the game-over
// effect to finish playing.
const gameOverLinger = 700 * time.Millisecond

func main() {
	width := flag.Int("width", snake.DefaultWidth, "Board width in pixels.")
	height := flag.Int("height", snake.DefaultHeight, "Board height in pixels.")
	block := flag.Int("block", snake.DefaultBlockSize, "Size of one grid block in pixels.")
	tps := flag.Int("tps", loop.DefaultTPS, "Game ticks per second.")
	seed := flag.Uint64("seed", 0, "Seed for food and poison placement; 0 picks one from the clock.")
	reward := flag.Int("reward", snake.DefaultReward, "Points gained for eating food.")
	penalty := flag.Int("penalty", snake.DefaultPenalty, "Points lost for eating poison.")
	frontend := flag.String("frontend", "window", "Where to play: window or terminal.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay (window frontend only).")
	mute := flag.Bool("mute", false, "Disable sound effects.")
	logPath := flag.String("log", "", "Log file for the terminal frontend; logs are discarded when empty.")
	flag.Parse()

	cfg := snake.Config{
		Width:     *width,
		Height:    *height,
		BlockSize: *block,
		Reward:    *reward,
		Penalty:   *penalty,
		Seed:      *seed,
	}
	state, err := snake.New(cfg)
	if err != nil {
		log.Fatalf("Invalid game settings: %v", err)
	}

	scheduler := loop.NewScheduler(state)

	var effects *sound.Player
	if !*mute {
		effects = sound.NewPlayer()
		if err := effects.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
			effects = nil
		} else {
			defer effects.Close()
		}
	}

	var result loop.Result
	switch *frontend {
	case "window":
		result, err = runWindow(scheduler, effects, *tps, *debug)
	case "terminal":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		result, err = runTerminal(ctx, scheduler, effects, *tps, *logPath)
	default:
		log.Fatalf("Unknown frontend %q, want window or terminal", *frontend)
	}
	if err != nil {
		log.Fatalf("Game aborted: %v", err)
	}

	log.Printf("Session %s ended after %d ticks (%s), length %d",
		result.SessionID, result.Ticks, describe(result), result.Length)
	fmt.Printf("Final Score %d\n", result.Score)

	if result.Terminal && effects != nil {
		time.Sleep(gameOverLinger)
	}
}

func describe(r loop.Result) string {
	if r.Terminal {
		return r.Reason.String()
	}
	return "quit"
}

// registerSystems installs the per-tick systems shared by both frontends.
// Sound plays before rendering so effects line up with the drawn frame.
func registerSystems(scheduler *loop.Scheduler, input loop.InputSource, renderer loop.Renderer, effects *sound.Player) {
	scheduler.Register(&loop.InputSystem{Source: input})
	scheduler.Register(&loop.TickSystem{})
	if effects != nil {
		scheduler.Register(&sound.System{Effects: effects})
	}
	scheduler.Register(&loop.RenderSystem{Renderer: renderer})
}
