package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"imgedit/pkg/input"
	"imgedit/pkg/transform"
)

// Tick processes at most one queued event and reports whether it did.
func (s *Session) Tick() bool {
	return s.tick(context.Background())
}

// Run renders the current image and then processes events until ctx is
// done. With nothing queued it waits for a Post or the idle timeout.
func (s *Session) Run(ctx context.Context) {
	s.render()

	timer := time.NewTimer(s.idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.tick(ctx) {
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(s.idle)

		select {
		case <-ctx.Done():
			return
		case <-s.queue.WakeupChan():
		case <-timer.C:
		}
	}
}

func (s *Session) tick(ctx context.Context) bool {
	ev, dropped, ok := s.queue.Next()
	if !ok {
		return false
	}

	if dropped > 0 {
		s.metrics.Coalesced(dropped)
		s.log.With(zap.Int("dropped", dropped)).Debug("coalesced motion")
	}

	switch e := ev.(type) {
	case input.Click:
		s.click(e)
	case input.Motion:
		s.motion(e)
	case input.Key:
		s.key(ctx, e)
	}

	s.metrics.Processed(ev.Kind())
	s.render()
	return true
}

func (s *Session) click(e input.Click) {
	log := s.log.With(
		zap.Stringer("button", e.Button),
		zap.Bool("pressed", e.Pressed),
		zap.Int("x", e.X),
		zap.Int("y", e.Y),
	)

	if !e.Pressed {
		s.drag.release()
		log.Debug("drag end")
		return
	}

	if s.current == nil {
		log.Debug("no image, press ignored")
		return
	}

	s.drag.press(e.Button, e.X, e.Y, s.current)
	log.Debug("drag start")
}

func (s *Session) motion(e input.Motion) {
	if !s.drag.active() {
		return
	}

	w, h := s.Window()
	snap := s.drag.snapshot

	switch s.drag.button {
	case input.ButtonPrimary:
		brightness, contrast := s.drag.brightnessContrast(e.X, e.Y, w, h)

		start := time.Now()
		s.current = transform.Adjust(snap, brightness, contrast)
		cost := time.Since(start)

		s.metrics.Transform("adjust", cost)
		s.log.With(
			zap.Float64("brightness", brightness),
			zap.Float64("contrast", contrast),
			zap.Duration("cost", cost),
		).Debug("adjust")

	case input.ButtonSecondary:
		factor := s.drag.zoom(e.X, e.Y, w, h)
		cx := float64(snap.Width()) / 2
		cy := float64(snap.Height()) / 2

		start := time.Now()
		img, err := transform.Scale(snap, factor, cx, cy)
		cost := time.Since(start)
		if err != nil {
			// pointer exactly on the window centre
			s.log.With(zap.Float64("factor", factor), zap.Error(err)).Debug("scale skipped")
			return
		}
		s.current = img

		s.metrics.Transform("scale", cost)
		s.log.With(
			zap.Float64("factor", factor),
			zap.Float64("cx", cx),
			zap.Float64("cy", cy),
			zap.Duration("cost", cost),
		).Debug("scale")
	}
}
