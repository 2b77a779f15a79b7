package session

import (
	"context"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"imgedit/internal/metrics"
	"imgedit/pkg/display"
	"imgedit/pkg/input"
	"imgedit/pkg/ycc"
)

// Store is the image I/O collaborator.
type Store interface {
	Load(ctx context.Context, path string) (*ycc.Image, error)
	Save(img image.Image, path string) (string, error)
}

func New(img *ycc.Image, disp display.Display, logger *zap.Logger, opts ...Option) *Session {
	id := xid.New().String()
	s := &Session{
		id:       id,
		log:      logger.With(zap.String("session", id)),
		queue:    input.NewQueue(),
		display:  disp,
		progress: os.Stderr,
		idle:     10 * time.Millisecond,
		winW:     600,
		winH:     800,
		current:  img,
		radius:   5,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Session owns the image being edited. Everything except Post, Resize and
// Window must be called from the goroutine running Run (or Tick).
type Session struct {
	id       string
	log      *zap.Logger
	queue    *input.Queue
	display  display.Display
	store    Store
	metrics  *metrics.Recorder
	progress io.Writer
	idle     time.Duration
	inPlace  bool

	wl   sync.RWMutex
	winW int
	winH int

	current *ycc.Image
	drag    drag
	radius  int
}

func (s *Session) ID() string {
	return s.id
}

// Post queues an input event for the loop.
func (s *Session) Post(ev input.Event) {
	s.metrics.Posted(ev.Kind())
	s.queue.Push(ev)
}

// Resize records new window dimensions, floored at 1.
func (s *Session) Resize(w, h int) {
	s.wl.Lock()
	defer s.wl.Unlock()
	s.winW = max(1, w)
	s.winH = max(1, h)
}

func (s *Session) Window() (int, int) {
	s.wl.RLock()
	defer s.wl.RUnlock()
	return s.winW, s.winH
}

func (s *Session) Current() *ycc.Image {
	return s.current
}

func (s *Session) Radius() int {
	return s.radius
}

func (s *Session) Dragging() (input.Button, bool) {
	return s.drag.button, s.drag.active()
}

// Pending is the number of queued events.
func (s *Session) Pending() int {
	return s.queue.Len()
}

func (s *Session) render() {
	if s.current == nil || s.display == nil {
		return
	}
	if err := s.display.Render(s.current); err != nil {
		s.log.With(zap.Error(err)).Info("render failed")
	}
}
