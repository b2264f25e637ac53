// Package effects holds the animation catalog for the matrix panel. Each
// effect is a self-contained state machine behind the render.Effect
// contract; the engine never special-cases an effect by name.
package effects

import (
	"math/rand"
	"time"

	"github.com/SeanoNET/PicoPixels/internal/render"
)

// NewRegistry builds the full effect catalog. rng backs every randomized
// effect (seed it deterministically in tests); now is the clock source
// for the clock face.
func NewRegistry(rng *rand.Rand, now func() time.Time) *render.Registry {
	reg := render.NewRegistry()
	reg.Register("matrix", func() render.Effect { return NewRain(rng) })
	reg.Register("fire", func() render.Effect { return NewFire(rng) })
	reg.Register("wave", func() render.Effect { return NewWave() })
	reg.Register("plasma", func() render.Effect { return NewPlasma() })
	reg.Register("balls", func() render.Effect { return NewBalls(rng) })
	reg.Register("scanner", func() render.Effect { return NewScanner() })
	reg.Register("dot", func() render.Effect { return NewDot() })
	reg.Register("pong", func() render.Effect { return NewPong(rng) })
	reg.Register("text", func() render.Effect { return NewScroll() })
	reg.Register("clock", func() render.Effect { return NewClockFace(now) })
	reg.Register("on", func() render.Effect { return NewAllOn() })
	reg.Register("off", func() render.Effect { return NewAllOff() })
	reg.Register("border", func() render.Effect { return NewBorder() })
	reg.Register("test", func() render.Effect { return NewTest() })
	return reg
}
