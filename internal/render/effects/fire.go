package effects

import (
	"math/rand"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// fireThreshold is the heat level above which a cell lights up.
const fireThreshold = 7

// Fire simulates flames on a heat grid: every frame the grid cools a
// little, random heat is seeded along the bottom row, and heat
// propagates upward as a decayed average of the three cells below.
type Fire struct {
	rng  *rand.Rand
	heat [][]int
}

func NewFire(rng *rand.Rand) *Fire { return &Fire{rng: rng} }

func (e *Fire) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	w, h := f.Width(), f.Height()
	if e.heat == nil {
		e.heat = make([][]int, h)
		for y := range e.heat {
			e.heat[y] = make([]int, w)
		}
	}
	for n := 0; n < ticks; n++ {
		e.cool(w, h)
		// seed the bottom row
		for x := 0; x < w; x++ {
			if e.rng.Float64() < 0.6 {
				e.heat[h-1][x] = 10 + e.rng.Intn(6)
			}
		}
		// propagate upward
		for y := h - 2; y >= 0; y-- {
			for x := 0; x < w; x++ {
				heat := e.heat[y+1][x]
				if x > 0 {
					heat += e.heat[y+1][x-1]
				}
				if x < w-1 {
					heat += e.heat[y+1][x+1]
				}
				v := heat/3 - e.rng.Intn(3)
				if v < 0 {
					v = 0
				}
				e.heat[y][x] = v
			}
		}
	}
	f.Clear()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.heat[y][x] > fireThreshold {
				f.Set(x, y, frame.On)
			}
		}
	}
	return true
}

// cool drains 1-2 heat from every cell above the seed row.
func (e *Fire) cool(w, h int) {
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			v := e.heat[y][x] - (1 + e.rng.Intn(2))
			if v < 0 {
				v = 0
			}
			e.heat[y][x] = v
		}
	}
}
