package effects

import (
	"math"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Wave draws two travelling sine waves across the panel.
type Wave struct {
	phase float64
}

func NewWave() *Wave { return &Wave{} }

func (e *Wave) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	e.phase += 0.3 * float64(ticks)
	w, h := f.Width(), f.Height()
	f.Clear()
	for x := 0; x < w; x++ {
		y1 := int(float64(h)/2 + 2*math.Sin(float64(x)*0.3+e.phase))
		y2 := int(float64(h)/2 + 1.5*math.Sin(float64(x)*0.4+e.phase+1.5))
		f.Set(x, clamp(y1, 0, h-1), frame.On)
		f.Set(x, clamp(y2, 0, h-1), frame.On)
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
