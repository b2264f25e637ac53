package effects

import (
	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// The one-shot patterns: each draws its frame and reports done, so the
// engine discards the instance immediately and the frame stays on the
// panel.

type AllOn struct{}

func NewAllOn() *AllOn { return &AllOn{} }

func (*AllOn) Advance(f *frame.Buffer, _ *render.Config, _ int) bool {
	f.Fill(frame.On)
	return false
}

type AllOff struct{}

func NewAllOff() *AllOff { return &AllOff{} }

func (*AllOff) Advance(f *frame.Buffer, _ *render.Config, _ int) bool {
	f.Clear()
	return false
}

type Border struct{}

func NewBorder() *Border { return &Border{} }

func (*Border) Advance(f *frame.Buffer, _ *render.Config, _ int) bool {
	drawBorder(f)
	return false
}

func drawBorder(f *frame.Buffer) {
	w, h := f.Width(), f.Height()
	f.Clear()
	for x := 0; x < w; x++ {
		f.Set(x, 0, frame.On)
		f.Set(x, h-1, frame.On)
	}
	for y := 0; y < h; y++ {
		f.Set(0, y, frame.On)
		f.Set(w-1, y, frame.On)
	}
}

// testFrames is the blink count of the panel self-test: three full
// on/off cycles, then the border frame.
const testFrames = 7

// Test is the panel self-test, the firmware's power-on pattern. Unlike
// the other one-shots it spans several frames, finishing after the
// border frame.
type Test struct {
	step int
}

func NewTest() *Test { return &Test{} }

func (e *Test) Advance(f *frame.Buffer, _ *render.Config, _ int) bool {
	switch {
	case e.step >= testFrames-1:
		drawBorder(f)
		return false
	case e.step%2 == 0:
		f.Fill(frame.On)
	default:
		f.Clear()
	}
	e.step++
	return true
}
