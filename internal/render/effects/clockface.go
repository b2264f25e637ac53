package effects

import (
	"fmt"
	"time"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

// ClockFace renders the current wall-clock time centered on the panel.
// It keeps no state between frames; everything is recomputed from the
// injected clock and the runtime config, so option changes apply on the
// next frame. Colon visibility alternates with the seconds parity when
// blinking is enabled.
type ClockFace struct {
	now func() time.Time
}

func NewClockFace(now func() time.Time) *ClockFace {
	if now == nil {
		now = time.Now
	}
	return &ClockFace{now: now}
}

func (e *ClockFace) Advance(f *frame.Buffer, cfg *render.Config, _ int) bool {
	t := e.now()
	hours, minutes, seconds := t.Hour(), t.Minute(), t.Second()

	suffix := ""
	if cfg.TwelveHour {
		if hours >= 12 {
			suffix = " PM"
		} else {
			suffix = " AM"
		}
		hours %= 12
		if hours == 0 {
			hours = 12
		}
	}

	var text string
	if cfg.ShowSeconds {
		text = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	} else {
		text = fmt.Sprintf("%02d:%02d", hours, minutes)
	}
	if cfg.BlinkColon && seconds%2 == 1 {
		text = replaceColons(text)
	}
	text += suffix

	f.Clear()
	x := (f.Width() - textWidth(text) + 1) / 2
	drawText(f, x, 1, text)
	return true
}

func replaceColons(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == ':' {
			b[i] = ' '
		}
	}
	return string(b)
}
