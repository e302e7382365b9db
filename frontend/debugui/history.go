package debugui

// history is a fixed-size ring of samples for imgui plots.
type history struct {
	samples []float32
	index   int
	filled  int

	plot []float32
}

func newHistory(size int) *history {
	if size <= 0 {
		size = 1
	}
	return &history{
		samples: make([]float32, size),
		plot:    make([]float32, size),
	}
}

func (h *history) add(v float32) {
	h.samples[h.index] = v
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average is taken over the samples recorded so far.
func (h *history) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples {
		sum += v
	}
	return sum / float32(h.filled)
}

// ordered returns the samples oldest first. The slice is reused by the next call.
func (h *history) ordered() []float32 {
	n := copy(h.plot, h.samples[h.index:])
	copy(h.plot[n:], h.samples[:h.index])
	return h.plot
}
