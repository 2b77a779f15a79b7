package panel

import (
	"github.com/pkg/errors"
)

const (
	cmdRestart    = 101
	cmdShutdown   = 108
	cmdStartup    = 109
	cmdSetLight   = 110
	cmdSetRotate  = 121
	cmdSetMirror  = 122
	cmdDrawBitmap = 197
)

// packCommand builds the 6-byte command frame: four 10-bit arguments packed
// big-endian into 5 bytes followed by the command code.
func packCommand(code uint8, args ...int) ([]byte, error) {
	if len(args) > 4 {
		return nil, errors.New("too many args")
	}

	var v [4]int
	copy(v[:], args)

	return header(make([]byte, 6), code, v), nil
}

// packOption builds a frame of size bytes carrying payload after an
// argument-less header.
func packOption(code uint8, size int, payload []byte) ([]byte, error) {
	if 6+len(payload) > size {
		return nil, errors.New("too many bytes")
	}

	frame := make([]byte, size)
	copy(frame[6:], payload)

	return header(frame, code, [4]int{}), nil
}

func header(frame []byte, code uint8, v [4]int) []byte {
	frame[0] = byte(v[0] >> 2)
	frame[1] = byte(((v[0] & 3) << 6) + (v[1] >> 4))
	frame[2] = byte(((v[1] & 0xF) << 4) + (v[2] >> 6))
	frame[3] = byte(((v[2] & 0x3F) << 2) + (v[3] >> 8))
	frame[4] = byte(v[3] & 0xFF)
	frame[5] = code
	return frame
}
