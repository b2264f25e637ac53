package effects

import (
	"math/rand"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Pong is a self-playing pong match. Both paddles chase the ball; the
// right paddle occasionally hesitates so rallies eventually end. A missed
// ball resets to center and scores for the other side.
type Pong struct {
	rng            *rand.Rand
	bx, by         float64
	dx, dy         float64
	p1, p2         int
	scoreL, scoreR int
	started        bool
}

func NewPong(rng *rand.Rand) *Pong { return &Pong{rng: rng} }

func (e *Pong) Advance(f *frame.Buffer, _ *render.Config, ticks int) bool {
	w, h := f.Width(), f.Height()
	if !e.started {
		e.started = true
		e.reset(w, h)
		e.p1, e.p2 = h/2, h/2
	}
	for n := 0; n < ticks; n++ {
		e.stepOne(w, h)
	}
	e.draw(f, w, h)
	return true
}

func (e *Pong) reset(w, h int) {
	e.bx, e.by = float64(w)/2, float64(h)/2
	e.dx, e.dy = randSign(e.rng), randSign(e.rng)
}

func (e *Pong) stepOne(w, h int) {
	e.bx += e.dx
	e.by += e.dy

	// wall bounce
	if e.by <= 0 || e.by >= float64(h-1) {
		e.dy = -e.dy
		e.by = clampF(e.by, 0, float64(h-1))
	}

	// paddles chase the ball; the right one is beatable
	e.p1 = chase(e.p1, e.by, h)
	if e.rng.Float64() < 0.8 {
		e.p2 = chase(e.p2, e.by, h)
	}

	bx, by := int(e.bx), int(e.by)
	if bx <= 1 && abs(by-e.p1) <= 1 {
		e.dx = absF(e.dx)
		e.dy = deflect(by, e.p1, e.dy)
	}
	if bx >= w-2 && abs(by-e.p2) <= 1 {
		e.dx = -absF(e.dx)
		e.dy = deflect(by, e.p2, e.dy)
	}

	// miss: score and reset
	if bx < 0 {
		e.scoreR++
		e.reset(w, h)
	} else if bx >= w {
		e.scoreL++
		e.reset(w, h)
	}
}

func (e *Pong) draw(f *frame.Buffer, w, h int) {
	f.Clear()
	for i := -1; i <= 1; i++ {
		f.Set(0, e.p1+i, frame.On)
		f.Set(w-1, e.p2+i, frame.On)
	}
	f.Set(int(e.bx), int(e.by), frame.On)
	for y := 0; y < h; y += 2 {
		f.Set(w/2, y, frame.Max/2)
	}
}

// chase moves a paddle center one cell toward target, staying one cell
// clear of the panel edges so the 3-pixel paddle never clips.
func chase(pos int, target float64, h int) int {
	t := int(target)
	switch {
	case t > pos && pos < h-2:
		return pos + 1
	case t < pos && pos > 1:
		return pos - 1
	}
	return pos
}

// deflect angles the ball off a paddle depending on which end it struck.
func deflect(ballY, paddleY int, dy float64) float64 {
	switch {
	case ballY < paddleY:
		return -1
	case ballY > paddleY:
		return 1
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
