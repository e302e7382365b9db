// Package debugui provides a Dear ImGui overlay for the window frontend. It
// shows the live game state and per-system timings of the scheduler.
package debugui

import (
	"fmt"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/venom/loop"
	"github.com/plus3/venom/snake"
)

const historyTicks = 120

// Overlay owns the ImGui backend. Its System must be registered on the
// scheduler so the panel is refreshed every tick.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	scheduler *loop.Scheduler
	timer     *TickTimer
	tickTimes *history
}

// New creates the ImGui backend and its window. It must be called before
// ebiten.RunGame.
func New(scheduler *loop.Scheduler, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend:   backend,
		scheduler: scheduler,
		timer:     NewTickTimer(),
		tickTimes: newHistory(historyTicks),
	}
}

func (o *Overlay) BeginFrame() { o.backend.BeginFrame() }
func (o *Overlay) EndFrame()   { o.backend.EndFrame() }

func (o *Overlay) WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// System returns the scheduler system that queues the panel for drawing.
func (o *Overlay) System() loop.System {
	return &System{overlay: o}
}

// System records tick timings and defers the ImGui panel until the
// frame's commands are flushed.
type System struct {
	overlay *Overlay
}

func (s *System) Execute(frame *loop.Frame) {
	s.overlay.tickTimes.add(float32(s.overlay.timer.Delta().Seconds() * 1000))

	snap := frame.State.Snapshot()
	frame.Commands.Defer(func() {
		s.overlay.render(snap)
	})
}

func (o *Overlay) render(snap snake.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 30), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 280), imgui.CondOnce)

	if !imgui.BeginV("Snake Debug", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range stateLines(snap) {
		imgui.Text(line)
	}

	avg := o.tickTimes.average()
	imgui.Separator()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Tick Time: %.2f ms (%.0f TPS)", avg, 1000.0/avg))
	}
	imgui.Text("Tick Time Graph (ms)")
	plot := o.tickTimes.ordered()
	imgui.PlotLinesFloatPtr("##ticktime", &plot[0], int32(len(plot)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range o.scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// stateLines formats the game state shown at the top of the panel.
func stateLines(snap snake.Snapshot) []string {
	head := "none"
	if len(snap.Snake) > 0 {
		head = snap.Snake[0].String()
	}
	status := "running"
	if snap.Terminal {
		status = "over: " + snap.EndReason.String()
	}

	return []string{
		fmt.Sprintf("Tick: %d", snap.Tick),
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Length: %d", len(snap.Snake)),
		fmt.Sprintf("Direction: %s", snap.Direction),
		fmt.Sprintf("Head: %s", head),
		fmt.Sprintf("Food: %s  Poison: %s", snap.Food, snap.Poison),
		fmt.Sprintf("Last outcome: %s", snap.Outcome),
		fmt.Sprintf("Status: %s", status),
	}
}

// TickTimer measures the wall time between consecutive ticks.
type TickTimer struct {
	last time.Time
}

func NewTickTimer() *TickTimer {
	return &TickTimer{last: time.Now()}
}

func (t *TickTimer) Delta() time.Duration {
	now := time.Now()
	d := now.Sub(t.last)
	t.last = now
	return d
}
