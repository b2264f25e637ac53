package protocol

import (
	"strconv"
	"strings"
)

// Speed bounds in milliseconds. The panel flickers below 50ms and is a
// slideshow above 2000ms; values outside the window are rejected, never
// clamped.
const (
	MinSpeedMS = 50
	MaxSpeedMS = 2000
)

// Parse turns one trimmed input line into a Command. effects is the
// registry's current name set, used to resolve bare effect names and the
// start argument. Parse never panics; every failure is a typed error.
func Parse(line string, effects []string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "start":
		// bare `start` defaults to the rain effect, matching the
		// firmware this protocol came from
		name := "matrix"
		if len(args) > 0 {
			name = strings.ToLower(args[0])
		}
		if !contains(effects, name) {
			return Command{}, &UnknownEffectError{Name: name, Valid: effects}
		}
		return Command{Kind: Start, Effect: name}, nil

	case "stop":
		return Command{Kind: Stop}, nil

	case "brightness":
		if len(args) == 0 {
			return Command{}, &ValidationError{Verb: verb, Reason: "missing level (0-15)"}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, &ValidationError{Verb: verb, Reason: "level must be an integer"}
		}
		if n < 0 || n > 15 {
			return Command{}, &ValidationError{Verb: verb, Reason: "level must be in 0-15"}
		}
		return Command{Kind: SetBrightness, Level: n}, nil

	case "speed":
		if len(args) == 0 {
			return Command{}, &ValidationError{Verb: verb, Reason: "missing interval in ms"}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, &ValidationError{Verb: verb, Reason: "interval must be an integer"}
		}
		if n <= 0 {
			return Command{}, &ValidationError{Verb: verb, Reason: "interval must be positive"}
		}
		if n < MinSpeedMS || n > MaxSpeedMS {
			return Command{}, &ValidationError{Verb: verb, Reason: "interval must be in 50-2000 ms"}
		}
		return Command{Kind: SetSpeed, Millis: n}, nil

	case "text":
		if len(args) == 0 {
			// bare `text` runs the scroller once with the stored payload
			return Command{Kind: RunOnce, Effect: "text"}, nil
		}
		payload := strings.ToUpper(strings.Join(args, " "))
		if len(payload) > MaxTextLen {
			payload = payload[:MaxTextLen]
		}
		return Command{Kind: SetText, Text: payload}, nil

	case "clock":
		if len(args) == 0 {
			return Command{Kind: RunOnce, Effect: "clock"}, nil
		}
		opts, err := parseClockOpts(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: SetClock, Clock: opts}, nil

	case "help":
		return Command{Kind: Help}, nil

	case "list":
		return Command{Kind: ListEffects}, nil
	}

	if contains(effects, verb) {
		return Command{Kind: RunOnce, Effect: verb}, nil
	}
	return Command{}, &UnknownCommandError{Verb: verb}
}

func parseClockOpts(args []string) (ClockOpts, error) {
	var opts ClockOpts
	for _, a := range args {
		switch strings.ToLower(a) {
		case "12", "12h":
			opts.TwelveHour = boolp(true)
		case "24", "24h":
			opts.TwelveHour = boolp(false)
		case "seconds", "sec":
			opts.ShowSeconds = boolp(true)
		case "noseconds", "nosec":
			opts.ShowSeconds = boolp(false)
		case "blink":
			opts.BlinkColon = boolp(true)
		case "noblink":
			opts.BlinkColon = boolp(false)
		default:
			return ClockOpts{}, &ValidationError{Verb: "clock", Reason: "unknown option " + strconv.Quote(a)}
		}
	}
	return opts, nil
}

func boolp(b bool) *bool { return &b }

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Usage is the reply body for the help command.
func Usage() string {
	return strings.Join([]string{
		"start <effect> - start animated effect",
		"stop - stop animation",
		"<effect> - run effect once",
		"brightness <0-15> - set brightness",
		"speed <50-2000> - set animation speed in ms",
		"text <message> - set scroll text",
		"clock [12|24] [seconds|noseconds] [blink|noblink] - clock options",
		"list - show all effects",
	}, "\n")
}
