package effects

import (
	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Scanner sweeps a bright column back and forth across the panel,
// reversing direction exactly at columns 0 and width-1. The columns
// either side of the eye are drawn dimmer and shorter.
type Scanner struct {
	pos, dir int
	started  bool
}

func NewScanner() *Scanner { return &Scanner{dir: 1} }

func (s *Scanner) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	w, h := f.Width(), f.Height()
	if !s.started {
		// first frame shows the eye at the left edge before it moves
		s.started = true
		ticks--
	}
	for n := 0; n < ticks; n++ {
		s.pos += s.dir
		if s.pos >= w-1 {
			s.pos = w - 1
			s.dir = -1
		} else if s.pos <= 0 {
			s.pos = 0
			s.dir = 1
		}
	}
	f.Clear()
	for y := 0; y < h; y++ {
		f.Set(s.pos, y, frame.On)
	}
	for y := 2; y < h-2; y++ {
		f.Set(s.pos-1, y, frame.Max/2)
		f.Set(s.pos+1, y, frame.Max/2)
	}
	return true
}
