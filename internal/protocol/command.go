// Package protocol parses the line-oriented command grammar spoken by the
// desktop clients over serial or websocket. Parsing is pure: one input
// line in, one typed Command or one typed error out, no side effects.
package protocol

// MaxTextLen caps the scroll-text payload. Longer input is truncated, not
// rejected; the panel width is the real constraint, not protocol validity.
const MaxTextLen = 64

type Kind int

const (
	// Start begins a looping effect.
	Start Kind = iota
	// Stop halts the active effect and blanks the panel.
	Stop
	// RunOnce runs an effect as a one-shot.
	RunOnce
	// SetBrightness adjusts panel intensity 0..15.
	SetBrightness
	// SetSpeed sets the frame interval in milliseconds.
	SetSpeed
	// SetText replaces the scroll-text payload.
	SetText
	// SetClock adjusts clock display options.
	SetClock
	// Help requests the usage text.
	Help
	// ListEffects requests the effect catalog.
	ListEffects
)

// ClockOpts carries the optional clock settings of a `clock` command.
// Nil fields were not mentioned on the line and stay unchanged.
type ClockOpts struct {
	TwelveHour  *bool
	ShowSeconds *bool
	BlinkColon  *bool
}

// Command is one parsed, validated instruction. Only the fields relevant
// to Kind are populated.
type Command struct {
	Kind   Kind
	Effect string // Start, RunOnce
	Level  int    // SetBrightness
	Millis int    // SetSpeed
	Text   string // SetText
	Clock  ClockOpts
}
