// Package sound plays short synthesized effects for game events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effect tones into the system speaker. A Player that was never
// initialized, or whose initialization failed, silently drops every effect.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. The game runs without sound when it fails.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Eat plays a short high blip.
func (p *Player) Eat() {
	p.play(tone(880, 60*time.Millisecond))
}

// Poison plays a low buzz.
func (p *Player) Poison() {
	p.play(tone(160, 150*time.Millisecond))
}

// GameOver plays a falling three note phrase.
func (p *Player) GameOver() {
	p.play(beep.Seq(
		tone(440, 120*time.Millisecond),
		tone(330, 120*time.Millisecond),
		tone(220, 300*time.Millisecond),
	))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// tone returns a sine wave of the given frequency cut to d. Frequencies the
// sample rate cannot represent yield silence of the same length.
func tone(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, sine)
}
