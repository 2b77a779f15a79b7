package bitmap

import (
	"image"
	"image/color"

	"imgedit/pkg/ycc"
)

// Encode packs src row by row into little-endian RGB565, two bytes per pixel.
//
// Each pixel is represented by two bytes, with 5 bits for red, 6 bits for
// green and 5 bits for blue:
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
//
// The low byte is written first.
func Encode(src image.Image) []byte {
	b := src.Bounds()
	out := make([]byte, 2*b.Dx()*b.Dy())
	m, isYCC := src.(*ycc.Image)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint16
			if isYCC {
				p := m.PixelAt(x, y)
				v = pack8(color.YCbCrToRGB(p.Y, p.Cb, p.Cr))
			} else {
				r, g, bl, _ := src.At(x, y).RGBA()
				v = pack16(r, g, bl)
			}
			out[i] = byte(v & 0xFF)
			out[i+1] = byte(v >> 8)
			i += 2
		}
	}

	return out
}

// pack16 keeps the highest 5 or 6 bits of 16-bit channels.
func pack16(r, g, b uint32) uint16 {
	return uint16((r & 0xF800) + ((g & 0xFC00) >> 5) + ((b & 0xF800) >> 11))
}

func pack8(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
