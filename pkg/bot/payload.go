package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"imgedit/pkg/input"
)

func radiusCommand(payload string) (input.Command, error) {
	switch strings.TrimSpace(payload) {
	case "":
		return input.CmdStatus, nil
	case "+":
		return input.CmdRadiusUp, nil
	case "-":
		return input.CmdRadiusDown, nil
	}
	return input.CmdUnknown, fmt.Errorf("usage: /radius [+|-]")
}

// dragEvents parses "<left|right> x0 y0 x1 y1" into a press, one motion and
// a release.
func dragEvents(payload string) ([]input.Event, error) {
	fields := strings.Fields(payload)
	if len(fields) != 5 {
		return nil, fmt.Errorf("usage: /drag <left|right> x0 y0 x1 y1")
	}

	button, err := input.ParseButton(fields[0])
	if err != nil {
		return nil, err
	}

	nums, err := atoi(fields[1:])
	if err != nil {
		return nil, err
	}

	return []input.Event{
		input.Click{Button: button, Pressed: true, X: nums[0], Y: nums[1]},
		input.Motion{X: nums[2], Y: nums[3]},
		input.Click{Button: button, Pressed: false, X: nums[2], Y: nums[3]},
	}, nil
}

func windowSize(payload string) (int, int, error) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("usage: /resize w h")
	}

	nums, err := atoi(fields)
	if err != nil {
		return 0, 0, err
	}
	if nums[0] < 1 || nums[1] < 1 {
		return 0, 0, fmt.Errorf("window size must be positive")
	}

	return nums[0], nums[1], nil
}

func atoi(fields []string) ([]int, error) {
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// describe renders a command result as a chat reply.
func describe(cmd input.Command, res input.Result) string {
	if res.Err != nil {
		return fmt.Sprintf("%s failed: %s", cmd, res.Err)
	}

	switch cmd {
	case input.CmdSave:
		return fmt.Sprintf("Saved to %s", res.Path)
	case input.CmdHelp:
		return res.Text
	case input.CmdEqualize, input.CmdLoad:
		return fmt.Sprintf("OK, %dx%d", res.Width, res.Height)
	}

	lines := []string{
		fmt.Sprintf("Image: %s", lo.Ternary(res.Width > 0, fmt.Sprintf("%dx%d", res.Width, res.Height), "none")),
		fmt.Sprintf("Radius: %d", res.Radius),
		fmt.Sprintf("Dragging: %t", res.Dragging),
	}
	return strings.Join(lines, "\n")
}
