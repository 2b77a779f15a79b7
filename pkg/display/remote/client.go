package remote

import (
	"bytes"
	"fmt"
	"image"
	"net/rpc"

	"github.com/disintegration/imaging"

	"imgedit/pkg/display"
)

// Dial connects to a display served by Serve on addr.
func Dial(addr string) (display.Display, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial display %s failed: %w", addr, err)
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Render(img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}

	return c.rpc.Call("Display.Render", &RenderRequest{Frame: buf.Bytes()}, &EmptyResponse{})
}

// Close drops the connection; the served display stays open.
func (c *Client) Close() error {
	return c.rpc.Close()
}
