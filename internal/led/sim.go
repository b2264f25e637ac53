package led

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/SeanoNET/PicoPixels/internal/frame"
)

// Sim renders frames as ASCII art, one block per commit. It stands in for
// the panel when no SPI hardware is present.
type Sim struct {
	mu         sync.Mutex
	out        io.Writer
	frames     int
	brightness int
}

func NewSim(out io.Writer) *Sim {
	return &Sim{out: out, brightness: 5}
}

func (s *Sim) Commit(f *frame.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d brightness %d\n", s.frames, s.brightness)
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if f.Lit(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Sim) SetBrightness(level int) error {
	if level < 0 || level > 15 {
		return fmt.Errorf("led: brightness %d out of range", level)
	}
	s.mu.Lock()
	s.brightness = level
	s.mu.Unlock()
	return nil
}

func (s *Sim) Close() error { return nil }

// Frames returns how many commits the sim has seen.
func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
