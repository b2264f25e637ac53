package effects

import (
	"math"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Dot moves a single pixel along a Lissajous path.
type Dot struct {
	phase float64
}

func NewDot() *Dot { return &Dot{} }

func (e *Dot) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	e.phase += 0.1 * float64(ticks)
	f.Clear()
	x := int((math.Sin(e.phase) + 1) * float64(f.Width()-1) / 2)
	y := int((math.Cos(e.phase*1.3) + 1) * float64(f.Height()-1) / 2)
	f.Set(x, y, frame.On)
	return true
}
