package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"imgedit/pkg/input"
)

var ErrSyntax = errors.New("syntax error")

const defaultDragSteps = 10

// Step is one action of a script. Exactly one of Event, Wait and the
// Width/Height pair is set.
type Step struct {
	Line   int
	Event  input.Event
	Wait   time.Duration
	Width  int
	Height int
}

func (s Step) resize() bool {
	return s.Width > 0 && s.Height > 0
}

// Parse reads a script, one command per line. '#' starts a comment.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		parsed, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for i := range parsed {
			parsed[i].Line = line
		}
		steps = append(steps, parsed...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script failed: %w", err)
	}

	return steps, nil
}

func parseLine(fields []string) ([]Step, error) {
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "press", "release":
		if len(args) != 3 {
			return nil, usage(verb, "<button> X Y")
		}
		button, err := input.ParseButton(args[0])
		if err != nil {
			return nil, errors.Wrap(ErrSyntax, err.Error())
		}
		xy, err := ints(args[1:])
		if err != nil {
			return nil, err
		}
		return events(input.Click{Button: button, Pressed: verb == "press", X: xy[0], Y: xy[1]}), nil

	case "motion":
		if len(args) != 2 {
			return nil, usage(verb, "X Y")
		}
		xy, err := ints(args)
		if err != nil {
			return nil, err
		}
		return events(input.Motion{X: xy[0], Y: xy[1]}), nil

	case "drag":
		if len(args) != 5 && len(args) != 6 {
			return nil, usage(verb, "<button> X0 Y0 X1 Y1 [steps]")
		}
		button, err := input.ParseButton(args[0])
		if err != nil {
			return nil, errors.Wrap(ErrSyntax, err.Error())
		}
		nums, err := ints(args[1:])
		if err != nil {
			return nil, err
		}
		n := defaultDragSteps
		if len(nums) == 5 {
			n = nums[4]
		}
		if n < 1 {
			return nil, errors.Wrapf(ErrSyntax, "drag steps must be positive, got %d", n)
		}
		return events(expandDrag(button, nums[0], nums[1], nums[2], nums[3], n)...), nil

	case "key":
		if len(args) != 1 || len([]rune(args[0])) != 1 {
			return nil, usage(verb, "<h|+|-|=|_|?>")
		}
		cmd := input.KeyCommand([]rune(args[0])[0])
		if cmd == input.CmdUnknown || cmd == input.CmdLoad || cmd == input.CmdSave {
			return nil, errors.Wrapf(ErrSyntax, "key %q is not bound, use load/save for file commands", args[0])
		}
		return events(input.Key{Command: cmd}), nil

	case "load":
		if len(args) != 1 {
			return nil, usage(verb, "PATH")
		}
		return events(input.Key{Command: input.CmdLoad, Arg: args[0]}), nil

	case "save":
		if len(args) > 1 {
			return nil, usage(verb, "[PATH]")
		}
		return events(input.Key{Command: input.CmdSave, Arg: strings.Join(args, "")}), nil

	case "resize":
		if len(args) != 2 {
			return nil, usage(verb, "W H")
		}
		wh, err := ints(args)
		if err != nil {
			return nil, err
		}
		if wh[0] < 1 || wh[1] < 1 {
			return nil, errors.Wrapf(ErrSyntax, "window size %dx%d", wh[0], wh[1])
		}
		return []Step{{Width: wh[0], Height: wh[1]}}, nil

	case "wait":
		if len(args) != 1 {
			return nil, usage(verb, "DURATION")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil || d < 0 {
			return nil, errors.Wrapf(ErrSyntax, "bad duration %q", args[0])
		}
		return []Step{{Wait: d}}, nil
	}

	return nil, errors.Wrapf(ErrSyntax, "unknown command %q", fields[0])
}

// expandDrag turns a drag into a press, n evenly spaced motions ending at
// (x1, y1), and a release.
func expandDrag(button input.Button, x0, y0, x1, y1, n int) []input.Event {
	evs := make([]input.Event, 0, n+2)
	evs = append(evs, input.Click{Button: button, Pressed: true, X: x0, Y: y0})
	for i := 1; i <= n; i++ {
		evs = append(evs, input.Motion{
			X: x0 + (x1-x0)*i/n,
			Y: y0 + (y1-y0)*i/n,
		})
	}
	return append(evs, input.Click{Button: button, Pressed: false, X: x1, Y: y1})
}

func events(evs ...input.Event) []Step {
	return lo.Map(evs, func(ev input.Event, _ int) Step {
		return Step{Event: ev}
	})
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func usage(verb, args string) error {
	return errors.Wrapf(ErrSyntax, "usage: %s %s", verb, args)
}
