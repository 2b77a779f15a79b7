package remote

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/rpc"

	"github.com/disintegration/imaging"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"imgedit/pkg/display"
)

// Handler exposes d over net/rpc for Dial.
func Handler(d display.Display) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("Display", &Service{d: d}); err != nil {
		return nil, err
	}
	return srv, nil
}

// Serve runs Handler(d) on srv for the lifetime of the fx app.
func Serve(d display.Display, srv *http.Server, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	h, err := Handler(d)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					logger.With(zap.Error(err)).Fatal("serve display failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("serving display")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	d display.Display
}

func (s *Service) Render(req *RenderRequest, _ *EmptyResponse) error {
	img, err := imaging.Decode(bytes.NewReader(req.Frame))
	if err != nil {
		return err
	}

	return s.d.Render(img)
}
