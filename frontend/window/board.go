// Package window runs the game in a desktop window using ebiten.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/venom/snake"
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorBodyOuter  = color.RGBA{0, 0, 255, 255}
	colorBodyInner  = color.RGBA{0, 100, 255, 255}
	colorFood       = color.RGBA{200, 0, 0, 255}
	colorPoison     = color.RGBA{10, 255, 10, 255}
)

type rect struct {
	x, y, w, h float32
	color      color.RGBA
}

// Board keeps the most recent snapshot and paints it when ebiten asks for a
// frame. Draw and Paint are both called from the ebiten game loop.
type Board struct {
	snap  snake.Snapshot
	ready bool
}

func NewBoard() *Board {
	return &Board{}
}

// Draw implements loop.Renderer.
func (b *Board) Draw(snap snake.Snapshot) error {
	if snap.BlockSize <= 0 {
		return fmt.Errorf("window: invalid block size %d", snap.BlockSize)
	}
	b.snap = snap
	b.ready = true
	return nil
}

// Paint renders the last snapshot onto dst.
func (b *Board) Paint(dst *ebiten.Image) {
	dst.Fill(colorBackground)
	if !b.ready {
		return
	}

	for _, r := range b.rects() {
		vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, r.color, false)
	}
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("Score: %d", b.snap.Score), 0, 0)
}

// rects lists the rectangles for the snake, food and poison in paint order.
// Each segment is an outer block with a lighter square inset by a fifth of
// the block size.
func (b *Board) rects() []rect {
	bs := float32(b.snap.BlockSize)
	inset := float32(b.snap.BlockSize / 5)

	out := make([]rect, 0, len(b.snap.Snake)*2+2)
	for _, p := range b.snap.Snake {
		x, y := float32(p.X), float32(p.Y)
		out = append(out,
			rect{x, y, bs, bs, colorBodyOuter},
			rect{x + inset, y + inset, bs - 2*inset, bs - 2*inset, colorBodyInner},
		)
	}
	out = append(out,
		rect{float32(b.snap.Food.X), float32(b.snap.Food.Y), bs, bs, colorFood},
		rect{float32(b.snap.Poison.X), float32(b.snap.Poison.Y), bs, bs, colorPoison},
	)
	return out
}

// Size returns the board size in pixels.
func (b *Board) Size() (int, int) {
	return b.snap.Width, b.snap.Height
}
