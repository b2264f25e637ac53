package effects

import (
	"math/rand"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

const rainDrops = 6

type drop struct {
	x, y, length int
}

// Rain is the matrix-rain effect: a handful of drops whose lead pixel
// descends one row per frame, leaving a short trail. Drops respawn above
// the panel once they fall off the bottom.
type Rain struct {
	rng   *rand.Rand
	drops []drop
}

func NewRain(rng *rand.Rand) *Rain { return &Rain{rng: rng} }

func (r *Rain) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	w, h := f.Width(), f.Height()
	if r.drops == nil {
		r.drops = make([]drop, rainDrops)
		for i := range r.drops {
			r.drops[i] = drop{
				x:      r.rng.Intn(w),
				y:      -r.rng.Intn(6),
				length: 3 + r.rng.Intn(3),
			}
		}
	}
	for n := 0; n < ticks; n++ {
		for i := range r.drops {
			r.drops[i].y++
			if r.drops[i].y > h+2 {
				r.drops[i].y = -1 - r.rng.Intn(5)
				r.drops[i].x = r.rng.Intn(w)
			}
		}
	}
	f.Clear()
	for _, d := range r.drops {
		for i := 0; i < d.length; i++ {
			f.Set(d.x, d.y-i, frame.On)
		}
	}
	return true
}
