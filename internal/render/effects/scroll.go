package effects

import (
	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// Scroll slides the configured text across the panel right to left,
// wrapping to the right edge once the full rendered width has scrolled
// off. The payload is re-read from the config every frame so a `text`
// command takes effect on the running scroller; a changed payload
// restarts the pass from the right edge.
type Scroll struct {
	offset  int
	text    string
	started bool
}

func NewScroll() *Scroll { return &Scroll{} }

func (e *Scroll) Advance(f *frame.Buffer, cfg *render.Config, ticks int) bool {
	w := f.Width()
	if !e.started || cfg.Text != e.text {
		e.started = true
		e.text = cfg.Text
		e.offset = w
		ticks--
	}
	width := textWidth(cfg.Text)
	for n := 0; n < ticks; n++ {
		e.offset--
		if e.offset < -width {
			e.offset = w
		}
	}
	f.Clear()
	drawText(f, e.offset, 1, cfg.Text)
	return true
}
