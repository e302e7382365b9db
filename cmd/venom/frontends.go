package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/plus3/venom/frontend/debugui"
	"github.com/plus3/venom/frontend/terminal"
	"github.com/plus3/venom/frontend/window"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/sound"
)

// gameOverHold is how long the terminal keeps the final board on screen.
const gameOverHold = 1500 * time.Millisecond

func runWindow(scheduler *loop.Scheduler, effects *sound.Player, tps int, debug bool) (loop.Result, error) {
	keyboard := window.NewKeyboard()
	board := window.NewBoard()
	registerSystems(scheduler, keyboard, board, effects)

	var overlay window.Overlay
	if debug {
		cfg := scheduler.State().Config()
		o := debugui.New(scheduler, window.Title, cfg.Width, cfg.Height)
		scheduler.Register(o.System())
		overlay = o
	}

	return window.Run(window.NewGame(scheduler, keyboard, board, overlay), tps)
}

func runTerminal(ctx context.Context, scheduler *loop.Scheduler, effects *sound.Player, tps int, logPath string) (result loop.Result, err error) {
	// Anything logged while tcell owns the terminal would corrupt the board.
	logOut := io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return result, fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log.SetOutput(logOut)
	defer log.SetOutput(os.Stderr)

	screen, err := terminal.NewScreen()
	if err != nil {
		return result, fmt.Errorf("open terminal: %w", err)
	}
	renderer := terminal.NewRenderer(screen, tps)
	defer renderer.Close()

	input := terminal.NewInput(screen)
	input.Start()
	registerSystems(scheduler, input, renderer, effects)

	if err := renderer.Draw(scheduler.State().Snapshot()); err != nil {
		return result, err
	}
	if err := renderer.WaitForNextTick(ctx); err != nil {
		return scheduler.Result(), nil
	}

	log.Printf("Session %s started", scheduler.Result().SessionID)
	result, err = scheduler.Run(ctx, renderer)
	if err == nil && result.Terminal {
		select {
		case <-time.After(gameOverHold):
		case <-ctx.Done():
		}
	}
	return result, err
}
