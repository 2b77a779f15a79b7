package panel

import (
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// OpenSerial opens the first serial port whose name contains name and
// configures it the way the panel firmware expects.
func OpenSerial(name string) (serial.Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var matched string
	for _, p := range ports {
		if strings.Contains(p, name) {
			matched = p
			break
		}
	}
	if matched == "" {
		return nil, errors.Errorf("USB port %q not found", name)
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: 115200})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", matched)
	}

	if err := port.SetDTR(true); err != nil {
		_ = port.Close()
		return nil, err
	}

	if err := port.SetRTS(true); err != nil {
		_ = port.Close()
		return nil, err
	}

	return port, nil
}
