package script

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"imgedit/pkg/input"
)

// Sink receives the events of a script, usually a session.Session.
type Sink interface {
	Post(ev input.Event)
	Resize(w, h int)
}

// Play posts the steps to sink in order. Commands are awaited so their
// failures can be reported against the script line; a failed command does
// not stop the script. Before returning, Play waits until the sink has
// processed everything it posted.
func Play(ctx context.Context, steps []Step, sink Sink, logger *zap.Logger) error {
	log := logger.With(zap.String("via", "script"))

	var errs error
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		switch {
		case st.Wait > 0:
			if err := sleep(ctx, st.Wait); err != nil {
				return multierr.Append(errs, err)
			}

		case st.resize():
			sink.Resize(st.Width, st.Height)

		case st.Event != nil:
			key, ok := st.Event.(input.Key)
			if !ok {
				sink.Post(st.Event)
				continue
			}

			res, err := call(ctx, sink, key)
			if err != nil {
				return multierr.Append(errs, err)
			}
			if res.Err != nil {
				log.With(zap.Int("line", st.Line), zap.Error(res.Err)).Warn("command failed")
				errs = multierr.Append(errs, fmt.Errorf("line %d: %w", st.Line, res.Err))
			} else if res.Path != "" {
				log.With(zap.Int("line", st.Line), zap.String("path", res.Path)).Info("saved")
			}
		}
	}

	if _, err := call(ctx, sink, input.Key{Command: input.CmdStatus}); err != nil {
		return multierr.Append(errs, err)
	}

	log.With(zap.Int("steps", len(steps))).Info("script done")
	return errs
}

// call posts a Key and blocks until the sink replies.
func call(ctx context.Context, sink Sink, key input.Key) (input.Result, error) {
	reply := make(chan input.Result, 1)
	key.Reply = func(res input.Result) {
		reply <- res
	}
	sink.Post(key)

	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return input.Result{}, ctx.Err()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
