package transform

import (
	"github.com/pkg/errors"

	"imgedit/pkg/ycc"
)

var (
	ErrInvalidFactor = errors.New("scale factor must be positive")
	ErrInvalidRadius = errors.New("radius must be at least 1")
	ErrSizeMismatch  = errors.New("source and destination sizes differ")
)

func checkSize(dst, src *ycc.Image) error {
	if !dst.SameSize(src) {
		return errors.Wrapf(ErrSizeMismatch, "src %dx%d, dst %dx%d",
			src.Width(), src.Height(), dst.Width(), dst.Height())
	}
	return nil
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
