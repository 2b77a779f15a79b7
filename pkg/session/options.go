package session

import (
	"io"
	"time"

	"imgedit/internal/metrics"
)

type Option func(s *Session)

func WithStore(store Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithRadius sets the initial equalization radius, floored at 1.
func WithRadius(radius int) Option {
	return func(s *Session) {
		s.radius = max(1, radius)
	}
}

func WithWindow(w, h int) Option {
	return func(s *Session) {
		s.winW = max(1, w)
		s.winH = max(1, h)
	}
}

// WithIdle sets how long Run sleeps on an empty queue before polling again.
func WithIdle(d time.Duration) Option {
	return func(s *Session) {
		s.idle = d
	}
}

// WithProgress sets where equalization progress is drawn.
func WithProgress(w io.Writer) Option {
	return func(s *Session) {
		s.progress = w
	}
}

// WithInPlaceEqualize makes equalization read the pixels it has already
// rewritten, reproducing scan-order dependent output.
func WithInPlaceEqualize() Option {
	return func(s *Session) {
		s.inPlace = true
	}
}
