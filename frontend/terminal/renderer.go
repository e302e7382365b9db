// Package terminal runs the game in a text terminal using tcell. Every board
// block is drawn as two character cells so the board keeps its aspect ratio.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

const (
	cellWidth = 2
	// boardTop is the first screen row of the board border; row 0 holds the score.
	boardTop = 1
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBorder     = styleBackground.Foreground(tcell.NewRGBColor(90, 90, 90))
	styleBody       = styleBackground.Foreground(tcell.NewRGBColor(0, 0, 255))
	styleHead       = styleBackground.Foreground(tcell.NewRGBColor(0, 100, 255))
	styleFood       = styleBackground.Foreground(tcell.NewRGBColor(200, 0, 0))
	stylePoison     = styleBackground.Foreground(tcell.NewRGBColor(10, 255, 10))
)

// Renderer draws snapshots onto a tcell screen and paces ticks.
type Renderer struct {
	screen tcell.Screen
	ticker *loop.Ticker
}

// NewScreen opens the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(styleBackground)
	screen.HideCursor()
	return screen, nil
}

// NewRenderer draws on screen and paces at tps ticks per second.
func NewRenderer(screen tcell.Screen, tps int) *Renderer {
	return &Renderer{
		screen: screen,
		ticker: loop.NewTicker(tps),
	}
}

func (r *Renderer) Draw(snap snake.Snapshot) error {
	cols, rows := snap.Cells()
	if cols == 0 || rows == 0 {
		return fmt.Errorf("terminal: empty board %dx%d", snap.Width, snap.Height)
	}

	r.screen.Clear()

	r.drawText(0, 0, styleBackground, fmt.Sprintf("Score: %d", snap.Score))
	r.drawBorder(cols, rows)

	r.drawBlock(snap, snap.Food, styleFood)
	r.drawBlock(snap, snap.Poison, stylePoison)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		style := styleBody
		if i == 0 {
			style = styleHead
		}
		r.drawBlock(snap, snap.Snake[i], style)
	}

	if snap.Terminal {
		msg := fmt.Sprintf(" Game over (%s) ", snap.EndReason)
		x := 1 + (cols*cellWidth-len(msg))/2
		r.drawText(max(x, 0), boardTop+1+rows/2, styleBackground.Reverse(true), msg)
	}

	r.screen.Show()
	return nil
}

// WaitForNextTick blocks until the next tick is due.
func (r *Renderer) WaitForNextTick(ctx context.Context) error {
	return r.ticker.WaitForNextTick(ctx)
}

// Close stops pacing and restores the terminal.
func (r *Renderer) Close() {
	r.ticker.Stop()
	r.screen.Fini()
}

// drawBlock paints the cell holding p. Cells outside the board, such as a
// freshly wrapped head, are not drawn.
func (r *Renderer) drawBlock(snap snake.Snapshot, p snake.Position, style tcell.Style) {
	if p.X < 0 || p.Y < 0 || p.X >= snap.Width || p.Y >= snap.Height {
		return
	}
	x := 1 + p.X/snap.BlockSize*cellWidth
	y := boardTop + 1 + p.Y/snap.BlockSize
	for dx := range cellWidth {
		r.screen.SetContent(x+dx, y, '█', nil, style)
	}
}

func (r *Renderer) drawBorder(cols, rows int) {
	right := cols*cellWidth + 1
	bottom := boardTop + rows + 1

	for x := 1; x < right; x++ {
		r.screen.SetContent(x, boardTop, tcell.RuneHLine, nil, styleBorder)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := boardTop + 1; y < bottom; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	r.screen.SetContent(0, boardTop, tcell.RuneULCorner, nil, styleBorder)
	r.screen.SetContent(right, boardTop, tcell.RuneURCorner, nil, styleBorder)
	r.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, styleBorder)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)
}

func (r *Renderer) drawText(x, y int, style tcell.Style, text string) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
