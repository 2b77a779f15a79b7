package imageio

import (
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/moolex/wallhaven-go/api"
	"go.uber.org/zap"
)

type Option func(s *Store)

func WithHTTPClient(cli *resty.Client) Option {
	return func(s *Store) {
		s.cli = cli.SetDoNotParseResponse(true)
	}
}

// WithWallhaven enables the wallhaven: source. An empty key only sees SFW
// wallpapers.
func WithWallhaven(key string, logger *zap.Logger) Option {
	return func(s *Store) {
		wh := api.New(key)
		wh.SetLogger(logger)
		s.wh = wh
	}
}

// WithOutputDir is where Save puts files it names itself.
func WithOutputDir(dir string) Option {
	return func(s *Store) {
		s.outDir = dir
	}
}

// WithProgress sets where download progress is drawn.
func WithProgress(w io.Writer) Option {
	return func(s *Store) {
		s.progress = w
	}
}
