package main

import (
	"context"
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"imgedit/pkg/display"
	"imgedit/pkg/display/panel"
	"imgedit/pkg/display/remote"
)

var serial = flag.String("serial", "ttyACM0", "serial name, empty to only log frames")
var listen = flag.String("listen", ":9123", "listen addr")
var light = flag.Uint8("light", 100, "set light")
var landscape = flag.Bool("landscape", false, "set landscape")
var invert = flag.Bool("invert", false, "set invert")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, *http.Server, error) {
				logger, err := zap.NewDevelopment()
				return logger, &http.Server{Addr: *listen}, err
			},
			func(lc fx.Lifecycle, logger *zap.Logger) (display.Display, error) {
				if *serial == "" {
					return display.Log(logger), nil
				}

				port, err := panel.OpenSerial(*serial)
				if err != nil {
					return nil, err
				}

				p, err := panel.New(port, logger, panel.WithLight(*light), panel.WithRotate(*landscape, *invert))
				if err != nil {
					_ = port.Close()
					return nil, err
				}

				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						return p.Close()
					},
				})
				return p, nil
			},
		),
		fx.Invoke(
			remote.Serve,
		),
	).Run()
}
