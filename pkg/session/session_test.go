package session

import (
	"context"
	"image"
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"imgedit/pkg/input"
	"imgedit/pkg/transform"
	"imgedit/pkg/ycc"
)

type frames struct {
	l    sync.Mutex
	imgs []image.Image
}

func (f *frames) Render(img image.Image) error {
	f.l.Lock()
	defer f.l.Unlock()
	f.imgs = append(f.imgs, img)
	return nil
}

func (f *frames) Close() error { return nil }

func (f *frames) count() int {
	f.l.Lock()
	defer f.l.Unlock()
	return len(f.imgs)
}

type memStore struct {
	images map[string]*ycc.Image
	saved  map[string]image.Image
}

func (m *memStore) Load(_ context.Context, path string) (*ycc.Image, error) {
	img, ok := m.images[path]
	if !ok {
		return nil, errors.Errorf("open %s: not found", path)
	}
	return img.Clone(), nil
}

func (m *memStore) Save(img image.Image, path string) (string, error) {
	if path == "" {
		path = "generated.png"
	}
	m.saved[path] = img
	return path, nil
}

func randomImage(w, h int) *ycc.Image {
	m := ycc.NewImage(image.Rect(0, 0, w, h))
	rand.New(rand.NewSource(int64(w*h))).Read(m.Pix)
	return m
}

func newSession(img *ycc.Image, opts ...Option) (*Session, *frames) {
	f := &frames{}
	opts = append([]Option{WithProgress(io.Discard)}, opts...)
	return New(img, f, zap.NewNop(), opts...), f
}

func drain(s *Session) int {
	n := 0
	for s.Tick() {
		n++
	}
	return n
}

func TestPrimaryDragAdjusts(t *testing.T) {
	s, f := newSession(ycc.Fill(4, 4, ycc.Pixel{Y: 100, Cb: 90, Cr: 160}))

	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 100, Y: 100})
	s.Post(input.Motion{X: 400, Y: 100})
	assert.Equal(t, 2, drain(s))

	assert.Equal(t, ycc.Pixel{Y: 227, Cb: 90, Cr: 160}, s.Current().PixelAt(3, 3))
	assert.Equal(t, 2, f.count())

	button, dragging := s.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, input.ButtonPrimary, button)
}

func TestDragIsCumulative(t *testing.T) {
	s, _ := newSession(ycc.Fill(2, 2, ycc.Pixel{Y: 100}))

	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 100, Y: 100})
	s.Post(input.Motion{X: 400, Y: 100})
	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: false, X: 400, Y: 100})
	s.Post(input.Motion{X: 100, Y: 100})
	drain(s)

	// motion back to the origin after release changes nothing
	assert.Equal(t, uint8(227), s.Current().LumaAt(0, 0))

	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 100, Y: 100})
	s.Post(input.Motion{X: 400, Y: 100})
	s.Post(input.Motion{X: 100, Y: 100})
	drain(s)

	// back at the origin of the second drag: the snapshot is untouched
	assert.Equal(t, uint8(227), s.Current().LumaAt(0, 0))
}

func TestSecondaryDragScales(t *testing.T) {
	src := randomImage(4, 4)
	s, _ := newSession(src.Clone())

	// window centre is (300,400): distance 100 at press, 200 after motion
	s.Post(input.Click{Button: input.ButtonSecondary, Pressed: true, X: 400, Y: 400})
	s.Post(input.Motion{X: 500, Y: 400})
	drain(s)

	want, err := transform.Scale(src, 2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, s.Current().Pix)
}

func TestSecondaryDragAtCentreKeepsImage(t *testing.T) {
	src := randomImage(3, 3)
	s, _ := newSession(src.Clone())

	s.Post(input.Click{Button: input.ButtonSecondary, Pressed: true, X: 350, Y: 400})
	s.Post(input.Motion{X: 300, Y: 400})
	drain(s)

	assert.Equal(t, src.Pix, s.Current().Pix)
}

func TestMiddleDragIgnoresMotion(t *testing.T) {
	src := randomImage(3, 3)
	s, _ := newSession(src.Clone())

	s.Post(input.Click{Button: input.ButtonMiddle, Pressed: true, X: 0, Y: 0})
	s.Post(input.Motion{X: 200, Y: 300})
	drain(s)

	assert.Equal(t, src.Pix, s.Current().Pix)
	_, dragging := s.Dragging()
	assert.True(t, dragging)
}

func TestMotionWhileIdleIgnored(t *testing.T) {
	src := randomImage(3, 3)
	s, f := newSession(src.Clone())

	s.Post(input.Motion{X: 10, Y: 10})
	assert.Equal(t, 1, drain(s))
	assert.Equal(t, src.Pix, s.Current().Pix)
	assert.Equal(t, 1, f.count())
}

func TestReleaseAnyButtonEndsDrag(t *testing.T) {
	s, _ := newSession(randomImage(2, 2))

	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 1, Y: 1})
	s.Post(input.Click{Button: input.ButtonSecondary, Pressed: false, X: 1, Y: 1})
	drain(s)

	_, dragging := s.Dragging()
	assert.False(t, dragging)
	assert.Nil(t, s.drag.snapshot)
}

func TestMotionBurstCoalesced(t *testing.T) {
	s, f := newSession(ycc.Fill(2, 2, ycc.Pixel{Y: 100}))

	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 0, Y: 0})
	require.True(t, s.Tick())
	for x := 1; x <= 5; x++ {
		s.Post(input.Motion{X: x * 60, Y: 0})
	}
	assert.Equal(t, 5, s.Pending())

	// one tick, one transform, for the last position
	require.True(t, s.Tick())
	assert.Equal(t, 0, s.Pending())
	assert.False(t, s.Tick())
	assert.Equal(t, 2, f.count())
	assert.Equal(t, uint8(227), s.Current().LumaAt(0, 0))
}

func TestResizeFloors(t *testing.T) {
	s, _ := newSession(nil, WithWindow(0, -3))
	w, h := s.Window()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	s.Resize(320, 0)
	w, h = s.Window()
	assert.Equal(t, 320, w)
	assert.Equal(t, 1, h)
}

func key(s *Session, cmd input.Command, arg string) input.Result {
	var res input.Result
	s.Post(input.Key{Command: cmd, Arg: arg, Reply: func(r input.Result) { res = r }})
	drain(s)
	return res
}

func TestRadiusCommands(t *testing.T) {
	s, _ := newSession(nil, WithRadius(2))
	assert.Equal(t, 3, key(s, input.CmdRadiusUp, "").Radius)
	for i := 0; i < 5; i++ {
		key(s, input.CmdRadiusDown, "")
	}
	assert.Equal(t, 1, s.Radius())
}

func TestEqualizeCommand(t *testing.T) {
	s, f := newSession(ycc.Fill(5, 4, ycc.Pixel{Y: 40, Cb: 1, Cr: 2}), WithRadius(1))

	res := key(s, input.CmdEqualize, "")
	require.NoError(t, res.Err)
	assert.Equal(t, ycc.Pixel{Y: 255, Cb: 1, Cr: 2}, s.Current().PixelAt(2, 2))
	assert.Equal(t, 5, res.Width)
	assert.Equal(t, 4, res.Height)
	assert.Equal(t, 1, f.count())
}

func TestEqualizeWithoutImage(t *testing.T) {
	s, _ := newSession(nil)
	assert.True(t, errors.Is(key(s, input.CmdEqualize, "").Err, ErrNoImage))
}

func TestLoadSave(t *testing.T) {
	store := &memStore{
		images: map[string]*ycc.Image{"a.png": ycc.Fill(3, 2, ycc.Pixel{Y: 9})},
		saved:  map[string]image.Image{},
	}
	s, _ := newSession(nil, WithStore(store))

	require.NoError(t, key(s, input.CmdLoad, "a.png").Err)
	assert.Equal(t, uint8(9), s.Current().LumaAt(2, 1))

	res := key(s, input.CmdSave, "b.png")
	require.NoError(t, res.Err)
	assert.Equal(t, "b.png", res.Path)
	assert.Same(t, s.Current(), store.saved["b.png"])

	res = key(s, input.CmdSave, "")
	require.NoError(t, res.Err)
	assert.Equal(t, "generated.png", res.Path)

	// a failed load keeps the current image
	assert.Error(t, key(s, input.CmdLoad, "missing.png").Err)
	assert.Equal(t, 3, s.Current().Width())
}

func TestLoadWithoutStore(t *testing.T) {
	s, _ := newSession(nil)
	assert.True(t, errors.Is(key(s, input.CmdLoad, "a.png").Err, ErrNoStore))
	assert.True(t, errors.Is(key(s, input.CmdSave, "a.png").Err, ErrNoStore))
}

func TestSnapshotIsClone(t *testing.T) {
	s, _ := newSession(randomImage(2, 2))

	res := key(s, input.CmdSnapshot, "")
	require.NoError(t, res.Err)
	snap, ok := res.Image.(*ycc.Image)
	require.True(t, ok)
	assert.Equal(t, s.Current().Pix, snap.Pix)
	assert.NotSame(t, s.Current(), snap)
}

func TestStatusAndUnknown(t *testing.T) {
	s, _ := newSession(ycc.Fill(7, 3, ycc.White))
	assert.Equal(t, "image: 7x3, window: 600x800, radius: 5, drag: none", key(s, input.CmdStatus, "").Text)
	assert.Equal(t, input.Help, key(s, input.CmdHelp, "").Text)
	assert.Error(t, key(s, input.CmdUnknown, "").Err)
}

func TestRunProcessesPostedEvents(t *testing.T) {
	s, f := newSession(ycc.Fill(2, 2, ycc.Pixel{Y: 100}), WithIdle(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	replied := make(chan input.Result, 1)
	s.Post(input.Click{Button: input.ButtonPrimary, Pressed: true, X: 100, Y: 100})
	s.Post(input.Motion{X: 400, Y: 100})
	s.Post(input.Key{Command: input.CmdStatus, Reply: func(r input.Result) { replied <- r }})

	select {
	case res := <-replied:
		assert.True(t, res.Dragging)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply from run loop")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run loop did not stop")
	}

	// initial frame plus one per event
	assert.Equal(t, 4, f.count())
	assert.Equal(t, uint8(227), s.Current().LumaAt(1, 1))
}
