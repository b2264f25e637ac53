package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned for blank input lines. Callers typically ignore it
// silently rather than reporting back.
var ErrEmpty = errors.New("empty command")

// UnknownCommandError reports a verb that is neither a command nor an
// effect name.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q, type 'help' for commands", e.Verb)
}

// ValidationError reports a recognized verb with a malformed or
// out-of-range argument.
type ValidationError struct {
	Verb   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Verb, e.Reason)
}

// UnknownEffectError reports an effect name missing from the registry,
// carrying the valid names so the reply can list them.
type UnknownEffectError struct {
	Name  string
	Valid []string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown effect %q, available: %s", e.Name, strings.Join(e.Valid, " "))
}
