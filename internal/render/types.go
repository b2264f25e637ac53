package render

import (
	"sort"
	"time"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/protocol"
)

// Effect is the uniform contract every animation implements. Advance
// applies ticks frame-steps to f and reports whether the effect wants to
// keep running; a false return makes the engine discard the instance.
// Effects must write only inside f's bounds and must not retain f.
type Effect interface {
	Advance(f *frame.Buffer, cfg *Config, ticks int) bool
}

// Factory constructs a fresh effect instance with clean state.
type Factory func() Effect

// Driver is the display sink the engine commits frames to. Hardware
// failure handling lives behind this interface; the engine treats commits
// as best-effort.
type Driver interface {
	Commit(f *frame.Buffer) error
	SetBrightness(level int) error
	Close() error
}

// Registry maps effect names to factories. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	m map[string]Factory
}

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		return
	}
	r.m[name] = f
}

func (r *Registry) Get(name string) (Factory, bool) { f, ok := r.m[name]; return f, ok }

// Names returns the registered effect names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Config is the runtime configuration shared between the command path and
// the active effect. It is owned by the engine goroutine; nothing else
// touches it directly.
type Config struct {
	Brightness int           // 0..15
	Interval   time.Duration // frame cadence
	Text       string        // scroll payload, uppercase

	TwelveHour  bool
	ShowSeconds bool
	BlinkColon  bool
}

// DefaultConfig mirrors the firmware's boot state.
func DefaultConfig() Config {
	return Config{
		Brightness: 5,
		Interval:   200 * time.Millisecond,
		Text:       "HELLO WORLD",
		BlinkColon: true,
	}
}

// SetText stores a scroll payload, enforcing the protocol's truncation cap
// even for callers that bypass the parser.
func (c *Config) SetText(s string) {
	if len(s) > protocol.MaxTextLen {
		s = s[:protocol.MaxTextLen]
	}
	c.Text = s
}

// ApplyClock folds a parsed clock option set into the config. Nil fields
// leave the current setting alone.
func (c *Config) ApplyClock(o protocol.ClockOpts) {
	if o.TwelveHour != nil {
		c.TwelveHour = *o.TwelveHour
	}
	if o.ShowSeconds != nil {
		c.ShowSeconds = *o.ShowSeconds
	}
	if o.BlinkColon != nil {
		c.BlinkColon = *o.BlinkColon
	}
}
