package ycc

import (
	"image"
	"image/color"
)

// Pixel is one full-resolution Y'CbCr sample.
type Pixel struct {
	Y  uint8
	Cb uint8
	Cr uint8
}

// White is neutral white in the Y'CbCr model.
var White = Pixel{Y: 255, Cb: 128, Cr: 128}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.YCbCr{Y: p.Y, Cb: p.Cb, Cr: p.Cr}.RGBA()
}

func NewImage(r image.Rectangle) *Image {
	r = image.Rect(0, 0, r.Dx(), r.Dy())
	return &Image{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

// Image is a 4:4:4 Y'CbCr buffer with three interleaved bytes per pixel and
// its origin at (0, 0). It implements the draw.Image interface.
type Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// Bounds implements the image.Image (and draw.Image) interface.
func (m *Image) Bounds() image.Rectangle {
	return m.Rect
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (m *Image) ColorModel() color.Model {
	return color.YCbCrModel
}

// At implements the image.Image (and draw.Image) interface.
func (m *Image) At(x, y int) color.Color {
	if !m.in(x, y) {
		return color.YCbCr{}
	}
	p := m.PixelAt(x, y)
	return color.YCbCr{Y: p.Y, Cb: p.Cb, Cr: p.Cr}
}

// Set implements the draw.Image interface.
func (m *Image) Set(x, y int, c color.Color) {
	if !m.in(x, y) {
		return
	}
	yc := color.YCbCrModel.Convert(c).(color.YCbCr)
	m.SetPixel(x, y, Pixel{Y: yc.Y, Cb: yc.Cb, Cr: yc.Cr})
}

func (m *Image) Width() int {
	return m.Rect.Dx()
}

func (m *Image) Height() int {
	return m.Rect.Dy()
}

func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride + 3*x
}

// PixelAt returns the pixel at (x, y); the coordinates must be in bounds.
func (m *Image) PixelAt(x, y int) Pixel {
	i := m.PixOffset(x, y)
	return Pixel{Y: m.Pix[i], Cb: m.Pix[i+1], Cr: m.Pix[i+2]}
}

// SetPixel stores p at (x, y); the coordinates must be in bounds.
func (m *Image) SetPixel(x, y int, p Pixel) {
	i := m.PixOffset(x, y)
	m.Pix[i] = p.Y
	m.Pix[i+1] = p.Cb
	m.Pix[i+2] = p.Cr
}

func (m *Image) LumaAt(x, y int) uint8 {
	return m.Pix[m.PixOffset(x, y)]
}

func (m *Image) SetLuma(x, y int, v uint8) {
	m.Pix[m.PixOffset(x, y)] = v
}

// Clone returns an independent deep copy.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Pix: pix, Stride: m.Stride, Rect: m.Rect}
}

// SameSize reports whether o has the same width and height as m.
func (m *Image) SameSize(o *Image) bool {
	return m.Rect.Dx() == o.Rect.Dx() && m.Rect.Dy() == o.Rect.Dy()
}

// Bytes returns the size of the pixel storage.
func (m *Image) Bytes() int {
	return len(m.Pix)
}

func (m *Image) in(x, y int) bool {
	return x >= 0 && x < m.Rect.Max.X && y >= 0 && y < m.Rect.Max.Y
}
