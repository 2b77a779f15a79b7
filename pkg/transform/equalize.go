package transform

import (
	"github.com/pkg/errors"

	"imgedit/pkg/ycc"
)

type Option func(o *equalizeOptions)

type equalizeOptions struct {
	inPlace  bool
	progress func(done, total int)
}

// InPlace makes Equalize read neighbourhoods from the buffer it is writing,
// so pixels rewritten earlier in the scan feed the counts of later ones.
func InPlace() Option {
	return func(o *equalizeOptions) {
		o.inPlace = true
	}
}

// WithProgress reports the number of finished columns after each column.
func WithProgress(fn func(done, total int)) Option {
	return func(o *equalizeOptions) {
		o.progress = fn
	}
}

// Equalize performs local histogram equalization on the luma of img.
//
// Every pixel is replaced by its rank within the (2*radius+1)^2 window around
// it, clipped at the image edges: s = 256*c/N - 1 where N is the window size
// and c the number of window pixels whose luma is not above the centre's.
// Chroma is untouched. Unless InPlace is given, all ranks are taken from the
// luma as it was before the pass.
func Equalize(img *ycc.Image, radius int, opts ...Option) error {
	if radius < 1 {
		return errors.Wrapf(ErrInvalidRadius, "radius %d", radius)
	}

	var o equalizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	pix := img.Pix
	if !o.inPlace {
		pix = make([]uint8, len(img.Pix))
		copy(pix, img.Pix)
	}

	w := img.Width()
	h := img.Height()
	stride := img.Stride

	for x := 0; x < w; x++ {
		x0 := max(0, x-radius)
		x1 := min(w, x+radius+1)

		for y := 0; y < h; y++ {
			y0 := max(0, y-radius)
			y1 := min(h, y+radius+1)

			center := pix[y*stride+3*x]
			count := 0
			for lx := x0; lx < x1; lx++ {
				for ly := y0; ly < y1; ly++ {
					if pix[ly*stride+3*lx] <= center {
						count++
					}
				}
			}

			n := (x1 - x0) * (y1 - y0)
			img.SetLuma(x, y, clampByte(256*count/n-1))
		}

		if o.progress != nil {
			o.progress(x+1, w)
		}
	}

	return nil
}
