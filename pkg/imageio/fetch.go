package imageio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

func (s *Store) fetch(ctx context.Context, url string) (image.Image, error) {
	resp, err := s.cli.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() >= 400 {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode())
	}

	bar := progressbar.NewOptions64(
		resp.RawResponse.ContentLength,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", url)),
		progressbar.OptionShowBytes(true),
	)

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	return decode(buf.Bytes())
}
