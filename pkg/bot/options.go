package bot

import (
	"time"
)

type Option func(b *Bot)

// WithTimeout bounds how long a handler waits for the editor loop.
func WithTimeout(d time.Duration) Option {
	return func(b *Bot) {
		b.timeout = d
	}
}
