package effects

import (
	"math"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Plasma lights pixels where a sum of three sinusoids over (x, y, phase)
// crosses a threshold. The phase accumulator advances each frame.
type Plasma struct {
	phase float64
}

func NewPlasma() *Plasma { return &Plasma{} }

func (e *Plasma) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	e.phase += 0.1 * float64(ticks)
	f.Clear()
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			v := (math.Sin(float64(x)*0.2+e.phase) +
				math.Sin(float64(y)*0.5+e.phase*1.2) +
				math.Sin(float64(x+y)*0.15+e.phase*0.8)) / 3
			if v > 0.3 {
				f.Set(x, y, frame.On)
			}
		}
	}
	return true
}
