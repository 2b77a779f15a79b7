package session

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"imgedit/pkg/input"
	"imgedit/pkg/transform"
)

var (
	ErrNoImage = errors.New("no image loaded")
	ErrNoStore = errors.New("no image store configured")
)

func (s *Session) key(ctx context.Context, k input.Key) {
	res := s.command(ctx, k.Command, k.Arg)
	if res.Err != nil {
		s.log.With(
			zap.String("command", string(k.Command)),
			zap.String("arg", k.Arg),
			zap.Error(res.Err),
		).Info("command failed")
	}
	if k.Reply != nil {
		k.Reply(res)
	}
}

func (s *Session) command(ctx context.Context, cmd input.Command, arg string) input.Result {
	var res input.Result

	switch cmd {
	case input.CmdEqualize:
		res.Err = s.equalize()
	case input.CmdRadiusUp:
		s.radius++
		s.log.With(zap.Int("radius", s.radius)).Info("radius")
	case input.CmdRadiusDown:
		s.radius = lo.Ternary(s.radius > 1, s.radius-1, 1)
		s.log.With(zap.Int("radius", s.radius)).Info("radius")
	case input.CmdLoad:
		res.Err = s.load(ctx, arg)
	case input.CmdSave:
		res.Path, res.Err = s.save(arg)
	case input.CmdSnapshot:
		if s.current == nil {
			res.Err = ErrNoImage
		} else {
			res.Image = s.current.Clone()
		}
	case input.CmdStatus:
		res.Text = s.status()
	case input.CmdHelp:
		res.Text = input.Help
	default:
		res.Err = errors.Errorf("unknown command %q", cmd)
	}

	res.Radius = s.radius
	_, res.Dragging = s.Dragging()
	if s.current != nil {
		res.Width = s.current.Width()
		res.Height = s.current.Height()
	}

	return res
}

func (s *Session) equalize() error {
	if s.current == nil {
		return ErrNoImage
	}

	bar := progressbar.NewOptions(
		s.current.Width(),
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription(fmt.Sprintf("equalize r=%d", s.radius)),
	)

	opts := []transform.Option{
		transform.WithProgress(func(done, _ int) {
			_ = bar.Set(done)
		}),
	}
	if s.inPlace {
		opts = append(opts, transform.InPlace())
	}

	start := time.Now()
	if err := transform.Equalize(s.current, s.radius, opts...); err != nil {
		return err
	}
	cost := time.Since(start)
	_ = bar.Finish()

	s.metrics.Transform("equalize", cost)
	s.log.With(zap.Int("radius", s.radius), zap.Duration("cost", cost)).Info("equalized")
	return nil
}

func (s *Session) load(ctx context.Context, path string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if path == "" {
		return errors.New("load needs a path")
	}

	img, err := s.store.Load(ctx, path)
	if err != nil {
		return err
	}

	s.current = img
	return nil
}

func (s *Session) save(path string) (string, error) {
	if s.store == nil {
		return "", ErrNoStore
	}
	if s.current == nil {
		return "", ErrNoImage
	}
	return s.store.Save(s.current, path)
}

func (s *Session) status() string {
	w, h := s.Window()
	button, dragging := s.Dragging()

	img := "none"
	if s.current != nil {
		img = fmt.Sprintf("%dx%d", s.current.Width(), s.current.Height())
	}

	return fmt.Sprintf("image: %s, window: %dx%d, radius: %d, drag: %s",
		img, w, h, s.radius, lo.Ternary(dragging, button.String(), "none"))
}
