package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/venom/loop"
)

// Title is the window title.
const Title = "Snake"

// Overlay draws debug UI on top of the board. BeginFrame and EndFrame wrap
// every scheduler tick.
type Overlay interface {
	BeginFrame()
	EndFrame()
	WantsKeyboard() bool
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Game implements ebiten.Game. Ebiten owns pacing: every Update runs one
// scheduler tick, so the tick rate is ebiten's TPS.
type Game struct {
	scheduler *loop.Scheduler
	keyboard  *Keyboard
	board     *Board
	overlay   Overlay
}

// NewGame wraps a scheduler whose systems read from keyboard and render to
// board. overlay may be nil.
func NewGame(scheduler *loop.Scheduler, keyboard *Keyboard, board *Board, overlay Overlay) *Game {
	return &Game{
		scheduler: scheduler,
		keyboard:  keyboard,
		board:     board,
		overlay:   overlay,
	}
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}

	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		g.keyboard.Update()
	}

	frame := g.scheduler.Once()
	switch {
	case frame.Err != nil:
		return frame.Err
	case frame.Quit, frame.Terminal:
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.board.Paint(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.scheduler.State().Config()
	if g.overlay != nil {
		g.overlay.Layout(cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height
}

// Run opens the window and blocks until the game ends or the window is
// closed. Closing the window counts as quitting.
func Run(game *Game, tps int) (loop.Result, error) {
	cfg := game.scheduler.State().Config()
	if tps <= 0 {
		tps = loop.DefaultTPS
	}

	ebiten.SetTPS(tps)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	// Draw the starting position before the first tick moves the snake.
	if err := game.board.Draw(game.scheduler.State().Snapshot()); err != nil {
		return game.scheduler.Result(), err
	}

	err := ebiten.RunGame(game)
	result := game.scheduler.Result()
	if !result.Terminal {
		result.Quit = true
	}
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return result, err
}
