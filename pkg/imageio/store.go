package imageio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/inhies/go-bytesize"
	"github.com/moolex/wallhaven-go/api"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"imgedit/pkg/ycc"
)

// WallhavenPrefix selects a random wallhaven.cc wallpaper matching the rest
// of the path as a search query.
const WallhavenPrefix = "wallhaven:"

func New(fs afero.Fs, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		fs:       fs,
		cli:      resty.New().SetDoNotParseResponse(true),
		log:      logger.With(zap.String("via", "imageio")),
		progress: os.Stderr,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Store loads images into Y'CbCr buffers and saves them back in the format
// named by the file extension.
type Store struct {
	fs  afero.Fs
	cli *resty.Client
	log *zap.Logger
	// options
	wh       *api.API
	outDir   string
	progress io.Writer
}

func (s *Store) Load(ctx context.Context, path string) (*ycc.Image, error) {
	var (
		src image.Image
		err error
	)

	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		src, err = s.fetch(ctx, path)
	case strings.HasPrefix(path, WallhavenPrefix):
		src, err = s.wallhaven(strings.TrimPrefix(path, WallhavenPrefix))
	default:
		src, err = s.open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s failed: %w", path, err)
	}

	img := ycc.FromImage(src)
	s.log.With(
		zap.String("path", path),
		zap.Int("w", img.Width()),
		zap.Int("h", img.Height()),
		zap.String("size", bytesize.New(float64(img.Bytes())).String()),
	).Info("loaded")

	return img, nil
}

// Save encodes img to path and returns the path written. An empty path
// writes a PNG with a generated name into the output directory.
func (s *Store) Save(img image.Image, path string) (string, error) {
	if path == "" {
		path = filepath.Join(s.outDir, xid.New().String()+".png")
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("save %s failed: %w", path, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("encode %s failed: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if exists, err := afero.DirExists(s.fs, dir); err != nil {
			return "", err
		} else if !exists {
			if err2 := s.fs.MkdirAll(dir, 0755); err2 != nil {
				return "", err2
			}
		}
	}

	if err := afero.WriteFile(s.fs, path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s failed: %w", path, err)
	}

	s.log.With(
		zap.String("path", path),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
	).Info("saved")

	return path, nil
}

func (s *Store) open(path string) (image.Image, error) {
	bs, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	return decode(bs)
}

func (s *Store) wallhaven(query string) (image.Image, error) {
	if s.wh == nil {
		return nil, errors.New("wallhaven source not configured")
	}

	q := api.NewQuery(query)
	q.Random()

	ret, err := s.wh.Query(q)
	if err != nil {
		return nil, fmt.Errorf("query wallpapers failed: %w", err)
	}

	wp, err := ret.Pick(api.PickLoop, api.PickRand)
	if err != nil {
		return nil, fmt.Errorf("get wallpaper failed: %w", err)
	}

	s.log.With(zap.String("url", wp.Url)).Debug("picked wallpaper")

	return s.fetch(context.Background(), wp.Path)
}

func decode(bs []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	return img, nil
}
