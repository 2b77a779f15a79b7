package ycc

import (
	"image"
	"image/color"
)

// FromImage converts any image into a zero-origin Y'CbCr buffer.
func FromImage(src image.Image) *Image {
	if m, ok := src.(*Image); ok {
		return m.Clone()
	}

	b := src.Bounds()
	dst := NewImage(b)

	// decoded JPEGs are already Y'CbCr, only the chroma needs upsampling
	if m, ok := src.(*image.YCbCr); ok {
		for x := b.Min.X; x < b.Max.X; x++ {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				yi := m.YOffset(x, y)
				ci := m.COffset(x, y)
				dst.SetPixel(x-b.Min.X, y-b.Min.Y, Pixel{Y: m.Y[yi], Cb: m.Cb[ci], Cr: m.Cr[ci]})
			}
		}
		return dst
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			dst.SetPixel(x-b.Min.X, y-b.Min.Y, Pixel{Y: yy, Cb: cb, Cr: cr})
		}
	}

	return dst
}

// Fill returns a w x h buffer where every pixel is p.
func Fill(w, h int, p Pixel) *Image {
	m := NewImage(image.Rect(0, 0, w, h))
	for i := 0; i < len(m.Pix); i += 3 {
		m.Pix[i] = p.Y
		m.Pix[i+1] = p.Cb
		m.Pix[i+2] = p.Cr
	}
	return m
}

// MeanLuma is the average Y over the whole buffer, 0 for an empty one.
func MeanLuma(m *Image) float64 {
	n := m.Width() * m.Height()
	if n == 0 {
		return 0
	}
	var sum uint64
	for i := 0; i < len(m.Pix); i += 3 {
		sum += uint64(m.Pix[i])
	}
	return float64(sum) / float64(n)
}
