package panel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"imgedit/pkg/bitmap"
)

// New starts the 3.5" USB panel behind conn and returns it as a display.
// Frames are letterboxed on white to the panel resolution.
func New(conn io.WriteCloser, logger *zap.Logger, opts ...Option) (*Panel, error) {
	p := &Panel{
		conn:   conn,
		log:    logger.With(zap.String("via", "panel")),
		width:  320,
		height: 480,
		light:  100,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.command(cmdStartup); err != nil {
		return nil, fmt.Errorf("startup failed: %w", err)
	}
	if err := p.setLight(p.light); err != nil {
		return nil, fmt.Errorf("set light failed: %w", err)
	}
	if err := p.setRotate(); err != nil {
		return nil, fmt.Errorf("set rotate failed: %w", err)
	}
	if p.mirror {
		if err := p.option(cmdSetMirror, 16, []byte{1}); err != nil {
			return nil, fmt.Errorf("set mirror failed: %w", err)
		}
	}

	return p, nil
}

type Panel struct {
	conn   io.WriteCloser
	log    *zap.Logger
	width  int
	height int
	// options
	light     uint8
	landscape bool
	invert    bool
	mirror    bool
}

func (p *Panel) Size() (int, int) {
	return p.width, p.height
}

func (p *Panel) Render(img image.Image) error {
	frame := imaging.PasteCenter(
		imaging.New(p.width, p.height, color.White),
		imaging.Fit(img, p.width, p.height, imaging.Lanczos),
	)

	if err := p.command(cmdDrawBitmap, 0, 0, p.width-1, p.height-1); err != nil {
		return err
	}

	return p.send(bitmap.Encode(frame))
}

func (p *Panel) Close() error {
	if err := p.command(cmdShutdown); err != nil {
		p.log.With(zap.Error(err)).Info("shutdown failed")
	}
	return p.conn.Close()
}

// the firmware takes 0 as full brightness
func (p *Panel) setLight(percent uint8) error {
	if percent > 100 {
		percent = 100
	}
	return p.command(cmdSetLight, int((1-float64(percent)/100)*255))
}

func (p *Panel) setRotate() error {
	ov := 100
	if p.landscape {
		ov++
		p.width, p.height = p.height, p.width
	}
	if p.invert {
		ov++
	}

	var bs bytes.Buffer
	bs.WriteByte(uint8(ov))
	_ = binary.Write(&bs, binary.BigEndian, uint16(p.width))
	_ = binary.Write(&bs, binary.BigEndian, uint16(p.height))

	return p.option(cmdSetRotate, 16, bs.Bytes())
}

func (p *Panel) command(code uint8, args ...int) error {
	frame, err := packCommand(code, args...)
	if err != nil {
		return err
	}
	return p.send(frame)
}

func (p *Panel) option(code uint8, size int, payload []byte) error {
	frame, err := packOption(code, size, payload)
	if err != nil {
		return err
	}
	return p.send(frame)
}

func (p *Panel) send(bs []byte) error {
	start := time.Now()
	n, err := p.conn.Write(bs)
	if err != nil {
		return err
	}

	ext := ""
	if len(bs) <= 16 {
		ext = fmt.Sprintf("%x", bs)
	}

	p.log.With(
		zap.Int("sent", n),
		zap.String("cost", time.Since(start).String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
