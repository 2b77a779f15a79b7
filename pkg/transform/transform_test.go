package transform

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgedit/pkg/ycc"
)

func randomImage(w, h int, seed int64) *ycc.Image {
	r := rand.New(rand.NewSource(seed))
	m := ycc.NewImage(image.Rect(0, 0, w, h))
	r.Read(m.Pix)
	return m
}

func TestAdjustIdentity(t *testing.T) {
	src := randomImage(17, 9, 1)
	out := Adjust(src, 0, 1)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestAdjustDoesNotWriteSource(t *testing.T) {
	src := randomImage(5, 5, 2)
	before := src.Clone()
	_ = Adjust(src, 40, 1.7)
	assert.Equal(t, before.Pix, src.Pix)
}

func TestAdjustBrightnessShift(t *testing.T) {
	src := ycc.Fill(4, 4, ycc.Pixel{Y: 100, Cb: 60, Cr: 200})
	out := Adjust(src, 20, 1)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			assert.Equal(t, ycc.Pixel{Y: 120, Cb: 60, Cr: 200}, out.PixelAt(x, y))
		}
	}
}

func TestAdjustBrightnessBeforeContrast(t *testing.T) {
	src := ycc.Fill(1, 1, ycc.Pixel{Y: 100})
	// (100+20-128)*2+128, not (100-128)*2+128+20
	assert.Equal(t, uint8(112), Adjust(src, 20, 2).LumaAt(0, 0))
}

func TestAdjustDragScenario(t *testing.T) {
	// drag from (100,100) to (400,100) in a 600x800 window
	brightness := 255 * 300.0 / 600
	contrast := 1 + 0.0/800
	src := ycc.Fill(2, 2, ycc.Pixel{Y: 100})
	assert.Equal(t, uint8(227), Adjust(src, brightness, contrast).LumaAt(1, 1))
}

func TestAdjustSaturates(t *testing.T) {
	src := randomImage(16, 16, 3)

	bright := Adjust(src, 255, 1)
	dark := Adjust(src, -255, 1)
	flat := Adjust(src, 0, math.NaN())
	for i := 0; i < len(src.Pix); i += 3 {
		assert.Equal(t, uint8(255), bright.Pix[i])
		assert.Equal(t, uint8(0), dark.Pix[i])
		assert.Equal(t, uint8(0), flat.Pix[i])
	}

	steep := Adjust(ycc.Fill(1, 2, ycc.Pixel{Y: 10}), 0, 50)
	assert.Equal(t, uint8(0), steep.LumaAt(0, 0))
	steep = Adjust(ycc.Fill(1, 2, ycc.Pixel{Y: 250}), 0, 50)
	assert.Equal(t, uint8(255), steep.LumaAt(0, 1))
}

func TestAdjustIntoSizeMismatch(t *testing.T) {
	err := AdjustInto(ycc.Fill(2, 2, ycc.White), ycc.Fill(3, 2, ycc.White), 0, 1)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestScaleIdentity(t *testing.T) {
	src := randomImage(9, 7, 4)
	for _, c := range [][2]float64{{0, 0}, {4.5, 3.5}, {0.1, 6.3}, {-20, 100}} {
		out, err := Scale(src, 1, c[0], c[1])
		require.NoError(t, err)
		assert.Equal(t, src.Pix, out.Pix, "center %v", c)
	}
}

func TestScaleZoomIn(t *testing.T) {
	src := randomImage(4, 4, 5)
	out, err := Scale(src, 2, 2, 2)
	require.NoError(t, err)

	// (0-2)/2+2 = 1, (3-2)/2+2 = 2.5
	assert.Equal(t, src.PixelAt(1, 1), out.PixelAt(0, 0))
	assert.Equal(t, src.PixelAt(2, 2), out.PixelAt(3, 3))
	assert.Equal(t, src.PixelAt(1, 2), out.PixelAt(0, 3))
}

func TestScaleOutsideIsWhite(t *testing.T) {
	src := randomImage(11, 6, 6)
	for _, tc := range []struct{ factor, cx, cy float64 }{
		{0.5, 5.5, 3},
		{0.3, 0, 0},
		{3, 10, 5},
		{0.75, -4, 8},
	} {
		out, err := Scale(src, tc.factor, tc.cx, tc.cy)
		require.NoError(t, err)

		for x := 0; x < 11; x++ {
			for y := 0; y < 6; y++ {
				sx := (float64(x)-tc.cx)/tc.factor + tc.cx
				sy := (float64(y)-tc.cy)/tc.factor + tc.cy
				if sx < 0 || sx >= 11 || sy < 0 || sy >= 6 {
					assert.Equal(t, ycc.White, out.PixelAt(x, y))
				} else {
					assert.Equal(t, src.PixelAt(int(sx), int(sy)), out.PixelAt(x, y))
				}
			}
		}
	}
}

func TestScaleInvalidFactor(t *testing.T) {
	src := randomImage(2, 2, 7)
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Scale(src, f, 1, 1)
		assert.True(t, errors.Is(err, ErrInvalidFactor), "factor %v", f)
	}
}

func TestScaleIntoSizeMismatch(t *testing.T) {
	err := ScaleInto(ycc.Fill(2, 3, ycc.White), ycc.Fill(2, 2, ycc.White), 2, 1, 1)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
}

func TestEqualizeUniform(t *testing.T) {
	img := ycc.Fill(13, 8, ycc.Pixel{Y: 100, Cb: 30, Cr: 220})
	require.NoError(t, Equalize(img, 3))

	for x := 0; x < 13; x++ {
		for y := 0; y < 8; y++ {
			assert.Equal(t, ycc.Pixel{Y: 255, Cb: 30, Cr: 220}, img.PixelAt(x, y))
		}
	}
}

func TestEqualizeKeepsChroma(t *testing.T) {
	img := randomImage(10, 10, 8)
	before := img.Clone()
	require.NoError(t, Equalize(img, 2))

	for i := 0; i < len(img.Pix); i += 3 {
		assert.Equal(t, before.Pix[i+1], img.Pix[i+1])
		assert.Equal(t, before.Pix[i+2], img.Pix[i+2])
	}
}

func TestEqualizeRanks(t *testing.T) {
	row := func() *ycc.Image {
		img := ycc.NewImage(image.Rect(0, 0, 3, 1))
		img.SetLuma(0, 0, 10)
		img.SetLuma(1, 0, 20)
		img.SetLuma(2, 0, 30)
		return img
	}

	snap := row()
	require.NoError(t, Equalize(snap, 1))
	assert.Equal(t, []uint8{127, 169, 255}, []uint8{snap.LumaAt(0, 0), snap.LumaAt(1, 0), snap.LumaAt(2, 0)})

	// rewritten neighbours feed later windows
	live := row()
	require.NoError(t, Equalize(live, 1, InPlace()))
	assert.Equal(t, []uint8{127, 84, 127}, []uint8{live.LumaAt(0, 0), live.LumaAt(1, 0), live.LumaAt(2, 0)})
}

func TestEqualizeClampsLargeWindows(t *testing.T) {
	img := ycc.Fill(17, 17, ycc.Pixel{Y: 200})
	img.SetLuma(8, 8, 0)

	// N = 289, c = 1: 256/289 - 1 = -1
	require.NoError(t, Equalize(img, 8))
	assert.Equal(t, uint8(0), img.LumaAt(8, 8))
}

func TestEqualizeProgress(t *testing.T) {
	var calls []int
	img := randomImage(5, 3, 9)
	require.NoError(t, Equalize(img, 1, WithProgress(func(done, total int) {
		assert.Equal(t, 5, total)
		calls = append(calls, done)
	})))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
}

func TestEqualizeInvalidRadius(t *testing.T) {
	err := Equalize(ycc.Fill(2, 2, ycc.White), 0)
	assert.True(t, errors.Is(err, ErrInvalidRadius))
}
