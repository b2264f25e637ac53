package effects

import (
	"math/rand"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

const ballCount = 2

type ball struct {
	x, y   float64
	dx, dy float64
}

// Balls integrates a couple of points by their velocity, reflecting the
// relevant velocity component on boundary collision.
type Balls struct {
	rng   *rand.Rand
	balls []ball
}

func NewBalls(rng *rand.Rand) *Balls { return &Balls{rng: rng} }

func (e *Balls) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	w, h := f.Width(), f.Height()
	if e.balls == nil {
		e.balls = make([]ball, ballCount)
		for i := range e.balls {
			e.balls[i] = ball{
				x:  float64(2 + e.rng.Intn(w-4)),
				y:  float64(2 + e.rng.Intn(h-4)),
				dx: randSign(e.rng),
				dy: randSign(e.rng),
			}
		}
	}
	for n := 0; n < ticks; n++ {
		for i := range e.balls {
			b := &e.balls[i]
			b.x += b.dx
			b.y += b.dy
			if b.x <= 0 || b.x >= float64(w-1) {
				b.dx = -b.dx
				b.x = clampF(b.x, 0, float64(w-1))
			}
			if b.y <= 0 || b.y >= float64(h-1) {
				b.dy = -b.dy
				b.y = clampF(b.y, 0, float64(h-1))
			}
		}
	}
	f.Clear()
	for _, b := range e.balls {
		f.Set(int(b.x), int(b.y), frame.On)
	}
	return true
}

func randSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
