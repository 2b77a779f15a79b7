package transform

import (
	"math"

	"imgedit/pkg/ycc"
)

// Adjust applies brightness then contrast to the luma of src and returns a
// new buffer. Chroma is copied unchanged and src is never written.
func Adjust(src *ycc.Image, brightness, contrast float64) *ycc.Image {
	dst := ycc.NewImage(src.Bounds())
	_ = AdjustInto(dst, src, brightness, contrast)
	return dst
}

// AdjustInto is Adjust writing into an existing buffer of the same size.
func AdjustInto(dst, src *ycc.Image, brightness, contrast float64) error {
	if err := checkSize(dst, src); err != nil {
		return err
	}

	lut := adjustTable(brightness, contrast)
	for i := 0; i+2 < len(src.Pix); i += 3 {
		dst.Pix[i] = lut[src.Pix[i]]
		dst.Pix[i+1] = src.Pix[i+1]
		dst.Pix[i+2] = src.Pix[i+2]
	}

	return nil
}

// the mapping only depends on the input luma, so it is computed once per call
func adjustTable(brightness, contrast float64) [256]uint8 {
	var lut [256]uint8
	for y := range lut {
		v := (float64(y)+brightness-128)*contrast + 128
		switch {
		case math.IsNaN(v), v <= 0:
			lut[y] = 0
		case v >= 255:
			lut[y] = 255
		default:
			lut[y] = clampByte(int(v))
		}
	}
	return lut
}
