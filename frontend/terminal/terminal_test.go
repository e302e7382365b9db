package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/venom/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(t *testing.T, screen tcell.SimulationScreen, x, y int) (rune, tcell.Color) {
	t.Helper()

	cells, width, _ := screen.GetContents()
	cell := cells[y*width+x]
	require.NotEmpty(t, cell.Runes, "no content at %d,%d", x, y)
	fg, _, _ := cell.Style.Decompose()
	return cell.Runes[0], fg
}

func rowText(screen tcell.SimulationScreen, y, n int) string {
	cells, width, _ := screen.GetContents()
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		if r := cells[y*width+x].Runes; len(r) > 0 {
			out = append(out, r[0])
		}
	}
	return string(out)
}

func testSnapshot() snake.Snapshot {
	return snake.Snapshot{
		Width:     160,
		Height:    100,
		BlockSize: 20,
		Snake:     []snake.Position{{X: 40, Y: 20}, {X: 20, Y: 20}, {X: -20, Y: 20}},
		Food:      snake.Position{X: 100, Y: 60},
		Poison:    snake.Position{X: 140, Y: 80},
		Score:     12,
	}
}

// screenCell maps a board position to the left screen column and row of its block.
func screenCell(p snake.Position) (int, int) {
	return 1 + p.X/20*cellWidth, boardTop + 1 + p.Y/20
}

func TestRendererDraw(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen, 20)
	defer r.ticker.Stop()

	require.NoError(t, r.Draw(testSnapshot()))

	assert.Equal(t, "Score: 12", rowText(screen, 0, 9))

	tests := []struct {
		name string
		pos  snake.Position
		want tcell.Color
	}{
		{"head", snake.Position{X: 40, Y: 20}, tcell.NewRGBColor(0, 100, 255)},
		{"body", snake.Position{X: 20, Y: 20}, tcell.NewRGBColor(0, 0, 255)},
		{"food", snake.Position{X: 100, Y: 60}, tcell.NewRGBColor(200, 0, 0)},
		{"poison", snake.Position{X: 140, Y: 80}, tcell.NewRGBColor(10, 255, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := screenCell(tt.pos)
			for dx := range cellWidth {
				ch, fg := cellAt(t, screen, x+dx, y)
				assert.Equal(t, '█', ch)
				assert.Equal(t, tt.want, fg)
			}
		})
	}

	t.Run("border", func(t *testing.T) {
		ch, _ := cellAt(t, screen, 0, boardTop)
		assert.Equal(t, tcell.RuneULCorner, ch)
		ch, _ = cellAt(t, screen, 8*cellWidth+1, boardTop+5+1)
		assert.Equal(t, tcell.RuneLRCorner, ch)
	})

	t.Run("wrapped segment is not drawn", func(t *testing.T) {
		ch, _ := cellAt(t, screen, 0, boardTop+2)
		assert.Equal(t, tcell.RuneVLine, ch, "off-board segment overwrote the border")
	})
}

func TestRendererDrawGameOver(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen, 20)
	defer r.ticker.Stop()

	snap := testSnapshot()
	snap.Terminal = true
	snap.EndReason = snake.EndCollision
	require.NoError(t, r.Draw(snap))

	cells, width, _ := screen.GetContents()
	var found bool
	for y := 0; y < len(cells)/width; y++ {
		if strings.Contains(rowText(screen, y, width), "Game over (self-collision)") {
			found = true
		}
	}
	assert.True(t, found, "game over banner not drawn")
}

func TestRendererRejectsEmptyBoard(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen, 20)
	defer r.ticker.Stop()

	assert.Error(t, r.Draw(snake.Snapshot{}))
}

func TestRendererPacing(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen, 1000)
	defer r.ticker.Stop()

	assert.NoError(t, r.WaitForNextTick(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.WaitForNextTick(ctx), context.Canceled)
}

func TestInputHandleEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want snake.Direction
		ok   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), snake.Up, true},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), snake.Down, true},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), snake.Left, true},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), snake.Right, true},
		{"vi k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), snake.Up, true},
		{"wasd a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), snake.Left, true},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(newSimScreen(t))
			in.HandleEvent(tt.ev)

			d, ok := in.Poll()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, d)
			}
			assert.False(t, in.Quit())
		})
	}
}

func TestInputLatestCommandWins(t *testing.T) {
	in := NewInput(newSimScreen(t))

	in.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	in.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	in.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	d, ok := in.Poll()
	assert.True(t, ok)
	assert.Equal(t, snake.Left, d)

	_, ok = in.Poll()
	assert.False(t, ok)
}

func TestInputQuit(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		in := NewInput(newSimScreen(t))
		in.HandleEvent(ev)
		assert.True(t, in.Quit(), "key %v should quit", ev.Name())
	}
}

func TestInputReadsScreenEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	in := NewInput(screen)
	in.Start()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.Eventually(t, in.Quit, time.Second, time.Millisecond)

	screen.Fini()
	select {
	case <-in.Done():
	case <-time.After(time.Second):
		t.Fatal("event goroutine did not stop after Fini")
	}
}
