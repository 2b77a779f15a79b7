package input

import (
	"fmt"
	"strings"
)

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "left"
	case ButtonSecondary:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// ParseButton accepts the names printed by Button.String.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "left", "primary":
		return ButtonPrimary, nil
	case "right", "secondary":
		return ButtonSecondary, nil
	case "middle":
		return ButtonMiddle, nil
	}
	return ButtonNone, fmt.Errorf("unknown button %q", s)
}

// Event is one entry of the input queue: a Click, a Motion or a Key.
type Event interface {
	Kind() string
}

// Click is a button press (Pressed) or release at window coordinates.
type Click struct {
	Button  Button
	Pressed bool
	X, Y    int
}

func (Click) Kind() string { return "click" }

// Motion is a pointer move while any button is held.
type Motion struct {
	X, Y int
}

func (Motion) Kind() string { return "motion" }

// Key asks the session to run a command on its own loop. Reply, when set,
// receives the outcome once the command has run.
type Key struct {
	Command Command
	Arg     string
	Reply   func(Result)
}

func (Key) Kind() string { return "key" }
