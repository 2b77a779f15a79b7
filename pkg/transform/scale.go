package transform

import (
	"math"

	"github.com/pkg/errors"

	"imgedit/pkg/ycc"
)

// Scale resizes src by factor about (centerX, centerY) using backward
// projection: each destination pixel samples the source at the inverse
// mapped position, truncated toward zero. Positions outside the source are
// filled with ycc.White. The result has the dimensions of src.
func Scale(src *ycc.Image, factor, centerX, centerY float64) (*ycc.Image, error) {
	dst := ycc.NewImage(src.Bounds())
	if err := ScaleInto(dst, src, factor, centerX, centerY); err != nil {
		return nil, err
	}
	return dst, nil
}

// ScaleInto is Scale writing into dst, which must not be src.
func ScaleInto(dst, src *ycc.Image, factor, centerX, centerY float64) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return errors.Wrapf(ErrInvalidFactor, "factor %v", factor)
	}
	if err := checkSize(dst, src); err != nil {
		return err
	}

	// (x-c)/1+c is not always x in floating point
	if factor == 1 {
		copy(dst.Pix, src.Pix)
		return nil
	}

	w := src.Width()
	h := src.Height()
	fw := float64(w)
	fh := float64(h)

	for y := 0; y < h; y++ {
		srcY := (float64(y)-centerY)/factor + centerY
		rowIn := srcY >= 0 && srcY < fh
		for x := 0; x < w; x++ {
			srcX := (float64(x)-centerX)/factor + centerX
			if rowIn && srcX >= 0 && srcX < fw {
				dst.SetPixel(x, y, src.PixelAt(int(srcX), int(srcY)))
			} else {
				dst.SetPixel(x, y, ycc.White)
			}
		}
	}

	return nil
}
