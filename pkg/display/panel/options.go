package panel

type Option func(p *Panel)

// WithLight sets the backlight in percent.
func WithLight(percent uint8) Option {
	return func(p *Panel) {
		p.light = percent
	}
}

func WithRotate(landscape bool, invert bool) Option {
	return func(p *Panel) {
		p.landscape = landscape
		p.invert = invert
	}
}

func WithMirror() Option {
	return func(p *Panel) {
		p.mirror = true
	}
}
