package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"imgedit/internal/metrics"
	"imgedit/pkg/bot"
	"imgedit/pkg/display"
	"imgedit/pkg/display/panel"
	"imgedit/pkg/display/remote"
	"imgedit/pkg/imageio"
	"imgedit/pkg/script"
	"imgedit/pkg/session"
	"imgedit/pkg/ycc"
)

var imagePath = flag.String("image", "", "image to open: file path, http(s) url or wallhaven:<query>")
var width = flag.Int("width", 600, "window width")
var height = flag.Int("height", 800, "window height")
var radius = flag.Int("radius", 5, "local histogram radius")
var idle = flag.Duration("idle", 10*time.Millisecond, "event loop idle wait")
var inPlace = flag.Bool("in-place", false, "equalize reading already rewritten pixels")
var scriptPath = flag.String("script", "", "input script to play")
var exitAfterScript = flag.Bool("exit-after-script", false, "exit once the script has been played")
var outputDir = flag.String("output-dir", ".", "directory for saves without a path")
var serialName = flag.String("panel", "", "USB panel serial name, e.g. ttyACM0")
var light = flag.Uint8("light", 100, "panel light")
var landscape = flag.Bool("landscape", false, "panel landscape")
var invert = flag.Bool("invert", false, "panel invert")
var remoteAddr = flag.String("remote", "", "addr of a panelserver to render on")
var tgToken = flag.String("tg-token", "", "telegram bot token")
var whKey = flag.String("wh-key", "", "wallhaven api key")
var metricsAddr = flag.String("metrics-addr", "", "prometheus listen addr, e.g. :9123")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Provide(
			newLogger,
			metrics.New,
			newStore,
			newDisplay,
			newSession,
		),
		fx.Invoke(
			runSession,
			serveMetrics,
			startBot,
			playScript,
		),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	if *debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newStore(logger *zap.Logger) *imageio.Store {
	opts := []imageio.Option{imageio.WithOutputDir(*outputDir)}
	if *whKey != "" {
		opts = append(opts, imageio.WithWallhaven(*whKey, logger))
	}
	return imageio.New(afero.NewOsFs(), logger, opts...)
}

func newDisplay(lc fx.Lifecycle, logger *zap.Logger) (display.Display, error) {
	ds := []display.Display{display.Log(logger)}

	if *serialName != "" {
		port, err := panel.OpenSerial(*serialName)
		if err != nil {
			return nil, err
		}

		opts := []panel.Option{panel.WithLight(*light), panel.WithRotate(*landscape, *invert)}
		p, err := panel.New(port, logger, opts...)
		if err != nil {
			_ = port.Close()
			return nil, err
		}
		ds = append(ds, p)
	}

	if *remoteAddr != "" {
		r, err := remote.Dial(*remoteAddr)
		if err != nil {
			return nil, err
		}
		ds = append(ds, r)
	}

	d := display.Multi(ds...)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return d.Close()
		},
	})

	return d, nil
}

func newSession(logger *zap.Logger, d display.Display, store *imageio.Store, rec *metrics.Recorder) (*session.Session, error) {
	var img *ycc.Image
	if *imagePath != "" {
		var err error
		if img, err = store.Load(context.Background(), *imagePath); err != nil {
			return nil, err
		}
	}

	opts := []session.Option{
		session.WithStore(store),
		session.WithMetrics(rec),
		session.WithRadius(*radius),
		session.WithWindow(*width, *height),
		session.WithIdle(*idle),
	}
	if *inPlace {
		opts = append(opts, session.WithInPlaceEqualize())
	}

	return session.New(img, d, logger, opts...), nil
}

func runSession(lc fx.Lifecycle, s *session.Session, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(exited)
				s.Run(ctx)
			}()
			logger.With(zap.String("session", s.ID())).Info("session started")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-exited:
				logger.Info("exited")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func serveMetrics(lc fx.Lifecycle, rec *metrics.Recorder, logger *zap.Logger) {
	if *metricsAddr == "" {
		return
	}

	srv := &http.Server{Addr: *metricsAddr, Handler: rec.Handler()}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.With(zap.Error(err)).Warn("metrics server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func startBot(lc fx.Lifecycle, s *session.Session, logger *zap.Logger) error {
	if *tgToken == "" {
		return nil
	}

	b, err := bot.New(*tgToken, s, logger)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			b.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			b.Stop()
			return nil
		},
	})
	return nil
}

func playScript(lc fx.Lifecycle, sd fx.Shutdowner, s *session.Session, logger *zap.Logger) error {
	if *scriptPath == "" {
		return nil
	}

	f, err := afero.NewOsFs().Open(*scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()

	steps, err := script.Parse(f)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := script.Play(ctx, steps, s, logger); err != nil {
					logger.With(zap.Error(err)).Warn("script finished with errors")
				}
				if *exitAfterScript && ctx.Err() == nil {
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return nil
}
