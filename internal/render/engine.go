package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/protocol"
)

// State is the engine's animation axis.
type State int

const (
	// Idle means no active effect; the panel shows whatever was last
	// committed (or nothing after a stop).
	Idle State = iota
	// Running means a looping effect is advanced every interval until
	// stopped or replaced.
	Running
	// OneShot means the active effect auto-transitions to Idle once its
	// Advance reports done.
	OneShot
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case OneShot:
		return "oneshot"
	default:
		return "idle"
	}
}

// maxCatchUpTicks bounds how many frame-steps a single late Tick may
// apply, so a stalled host doesn't fast-forward an animation absurdly.
const maxCatchUpTicks = 8

// Request is one command line plus the way to answer its sender.
type Request struct {
	Line  string
	Reply func(string)
}

// Engine owns the frame buffer, the runtime config and the active effect
// instance, and paces commits to the display driver. All methods must be
// called from a single goroutine; Run is that goroutine in production.
type Engine struct {
	buf *frame.Buffer
	cfg Config
	reg *Registry
	drv Driver
	log zerolog.Logger

	now func() time.Time

	state      State
	active     Effect
	activeName string
	last       time.Time

	onCommit func(w, h int, pix []uint8)
}

func NewEngine(w, h int, reg *Registry, drv Driver, cfg Config, log zerolog.Logger) (*Engine, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("render: invalid panel dimensions")
	}
	if reg == nil || drv == nil {
		return nil, errors.New("render: registry and driver are required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	e := &Engine{
		buf: frame.New(w, h),
		cfg: cfg,
		reg: reg,
		drv: drv,
		log: log,
		now: time.Now,
	}
	if err := drv.SetBrightness(cfg.Brightness); err != nil {
		log.Warn().Err(err).Msg("initial brightness not applied")
	}
	return e, nil
}

// SetNowFunc replaces the wall-clock source. Test hook.
func (e *Engine) SetNowFunc(f func() time.Time) {
	if f != nil {
		e.now = f
	}
}

// OnCommit registers a hook that receives a snapshot of every committed
// frame. Used by the websocket preview broadcaster.
func (e *Engine) OnCommit(fn func(w, h int, pix []uint8)) { e.onCommit = fn }

func (e *Engine) State() State       { return e.state }
func (e *Engine) ActiveName() string { return e.activeName }
func (e *Engine) Config() Config     { return e.cfg }

// HandleLine parses and applies one command line, returning the reply to
// send back. Blank lines produce an empty reply. A malformed line never
// changes engine state.
func (e *Engine) HandleLine(line string) string {
	cmd, err := protocol.Parse(strings.TrimSpace(line), e.reg.Names())
	if err != nil {
		if errors.Is(err, protocol.ErrEmpty) {
			return ""
		}
		e.log.Debug().Err(err).Str("line", line).Msg("command rejected")
		return "error: " + err.Error()
	}
	reply, err := e.Apply(cmd)
	if err != nil {
		return "error: " + err.Error()
	}
	return reply
}

// Apply executes a parsed command. Validation errors leave the runtime
// state untouched.
func (e *Engine) Apply(cmd protocol.Command) (string, error) {
	switch cmd.Kind {
	case protocol.Start:
		if err := e.activate(cmd.Effect, Running); err != nil {
			return "", err
		}
		return "started " + cmd.Effect, nil

	case protocol.Stop:
		e.discard()
		e.buf.Clear()
		e.commit()
		return "stopped", nil

	case protocol.RunOnce:
		if err := e.activate(cmd.Effect, OneShot); err != nil {
			return "", err
		}
		return "ran " + cmd.Effect, nil

	case protocol.SetBrightness:
		if cmd.Level < 0 || cmd.Level > 15 {
			return "", &protocol.ValidationError{Verb: "brightness", Reason: "level must be in 0-15"}
		}
		if err := e.drv.SetBrightness(cmd.Level); err != nil {
			e.log.Warn().Err(err).Int("level", cmd.Level).Msg("brightness not applied")
		}
		e.cfg.Brightness = cmd.Level
		return fmt.Sprintf("brightness %d", cmd.Level), nil

	case protocol.SetSpeed:
		if cmd.Millis < protocol.MinSpeedMS || cmd.Millis > protocol.MaxSpeedMS {
			return "", &protocol.ValidationError{Verb: "speed", Reason: "interval must be in 50-2000 ms"}
		}
		e.cfg.Interval = time.Duration(cmd.Millis) * time.Millisecond
		return fmt.Sprintf("speed %dms", cmd.Millis), nil

	case protocol.SetText:
		e.cfg.SetText(cmd.Text)
		return "text set to " + e.cfg.Text, nil

	case protocol.SetClock:
		e.cfg.ApplyClock(cmd.Clock)
		return e.clockReply(), nil

	case protocol.Help:
		return protocol.Usage(), nil

	case protocol.ListEffects:
		return "effects: " + strings.Join(e.reg.Names(), " "), nil
	}
	return "", &protocol.UnknownCommandError{Verb: "?"}
}

// Tick advances the active effect when the configured interval has
// elapsed since the last committed frame. Call it at a cadence well below
// the smallest interval; it is cheap when nothing is due.
func (e *Engine) Tick(now time.Time) {
	if e.active == nil {
		return
	}
	elapsed := now.Sub(e.last)
	if elapsed < e.cfg.Interval {
		return
	}
	ticks := int(elapsed / e.cfg.Interval)
	if ticks > maxCatchUpTicks {
		ticks = maxCatchUpTicks
	}
	e.step(now, ticks)
}

// Blank clears the panel. Used on shutdown.
func (e *Engine) Blank() {
	e.discard()
	e.buf.Clear()
	e.commit()
}

// Run drains command requests and keeps the frame cadence going. It
// returns when ctx is cancelled. The poll ticker is the loop's only
// suspension point, so frame timing never stalls on absent input.
func (e *Engine) Run(ctx context.Context, requests <-chan Request) {
	poll := time.NewTicker(5 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			if reply := e.HandleLine(req.Line); reply != "" && req.Reply != nil {
				req.Reply(reply)
			}
		case <-poll.C:
			e.Tick(e.now())
		}
	}
}

// activate replaces the active effect with a fresh instance of name and
// renders its first frame immediately. The old instance is discarded
// unconditionally, never reused.
func (e *Engine) activate(name string, s State) error {
	factory, ok := e.reg.Get(name)
	if !ok {
		return &protocol.UnknownEffectError{Name: name, Valid: e.reg.Names()}
	}
	e.active = factory()
	e.activeName = name
	e.state = s
	e.log.Info().Str("effect", name).Str("state", s.String()).Msg("effect activated")
	e.step(e.now(), 1)
	return nil
}

func (e *Engine) step(now time.Time, ticks int) {
	cont := e.active.Advance(e.buf, &e.cfg, ticks)
	e.commit()
	e.last = now
	if !cont {
		// one-shot complete; the committed frame stays on the panel
		e.discard()
	}
}

func (e *Engine) discard() {
	e.active = nil
	e.activeName = ""
	e.state = Idle
}

func (e *Engine) commit() {
	if err := e.drv.Commit(e.buf); err != nil {
		e.log.Warn().Err(err).Msg("frame commit failed")
	}
	if e.onCommit != nil {
		e.onCommit(e.buf.Width(), e.buf.Height(), e.buf.Snapshot())
	}
}

func (e *Engine) clockReply() string {
	format := "24h"
	if e.cfg.TwelveHour {
		format = "12h"
	}
	parts := []string{"clock " + format}
	if e.cfg.ShowSeconds {
		parts = append(parts, "seconds")
	} else {
		parts = append(parts, "noseconds")
	}
	if e.cfg.BlinkColon {
		parts = append(parts, "blink")
	} else {
		parts = append(parts, "noblink")
	}
	return strings.Join(parts, " ")
}
