package input

import (
	"image"
)

type Command string

const (
	CmdEqualize   Command = "equalize"
	CmdRadiusUp   Command = "radius+"
	CmdRadiusDown Command = "radius-"
	CmdLoad       Command = "load"
	CmdSave       Command = "save"
	CmdSnapshot   Command = "snapshot"
	CmdStatus     Command = "status"
	CmdHelp       Command = "help"
	CmdUnknown    Command = ""
)

// KeyCommand maps the single-key bindings of the editor window.
func KeyCommand(key rune) Command {
	switch key {
	case 'h':
		return CmdEqualize
	case '+', '=':
		return CmdRadiusUp
	case '-', '_':
		return CmdRadiusDown
	case 'l':
		return CmdLoad
	case 's':
		return CmdSave
	case '?':
		return CmdHelp
	}
	return CmdUnknown
}

// Result is what a Key's Reply receives.
type Result struct {
	Radius   int
	Width    int
	Height   int
	Dragging bool
	Path     string
	Image    image.Image
	Text     string
	Err      error
}

const Help = `Controls:

  h  - perform histogram equalization
  +  - increase local histogram radius
  -  - decrease local histogram radius
  l  - load image
  s  - save image

  left drag left/right  - adjust brightness
  left drag up/down     - adjust contrast
  right drag            - scale`
