package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

// Keyboard samples keys pressed since the previous ebiten update. Arrow
// keys steer; Escape and Q quit.
type Keyboard struct {
	loop.CommandSlot

	keys []ebiten.Key
}

func NewKeyboard() *Keyboard {
	return &Keyboard{keys: make([]ebiten.Key, 0, 8)}
}

// Update reads the keys pressed during the current ebiten tick.
func (k *Keyboard) Update() {
	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	k.Handle(k.keys)
}

// Handle applies keys in order, so the last steering key wins.
func (k *Keyboard) Handle(keys []ebiten.Key) {
	for _, key := range keys {
		switch key {
		case ebiten.KeyEscape, ebiten.KeyQ:
			k.RequestQuit()
		case ebiten.KeyArrowUp:
			k.Offer(snake.Up)
		case ebiten.KeyArrowDown:
			k.Offer(snake.Down)
		case ebiten.KeyArrowLeft:
			k.Offer(snake.Left)
		case ebiten.KeyArrowRight:
			k.Offer(snake.Right)
		}
	}
}
