package display

import (
	"image"

	"go.uber.org/zap"

	"imgedit/pkg/ycc"
)

// Log is a display that only describes the frames it gets.
func Log(logger *zap.Logger) Display {
	return &logDisplay{l: logger.With(zap.String("via", "display"))}
}

type logDisplay struct {
	l      *zap.Logger
	frames int
}

func (d *logDisplay) Render(img image.Image) error {
	d.frames++

	ce := d.l.Check(zap.DebugLevel, "render")
	if ce == nil {
		return nil
	}

	b := img.Bounds()
	fields := []zap.Field{
		zap.Int("frame", d.frames),
		zap.Int("w", b.Dx()),
		zap.Int("h", b.Dy()),
	}
	if m, ok := img.(*ycc.Image); ok {
		fields = append(fields, zap.Float64("luma", ycc.MeanLuma(m)))
	}
	ce.Write(fields...)
	return nil
}

func (d *logDisplay) Close() error {
	d.l.With(zap.Int("frames", d.frames)).Info("closed")
	return nil
}
