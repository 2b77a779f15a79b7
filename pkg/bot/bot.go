package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"imgedit/pkg/input"
)

// Sink is the editor the bot drives, usually a session.Session.
type Sink interface {
	Post(ev input.Event)
	Resize(w, h int)
}

func New(token string, sink Sink, logger *zap.Logger, opts ...Option) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot failed: %w", err)
	}

	bot := &Bot{
		b:       b,
		sink:    sink,
		log:     logger.With(zap.String("via", "bot")),
		timeout: 2 * time.Minute,
	}

	for _, opt := range opts {
		opt(bot)
	}

	return bot, nil
}

type Bot struct {
	b       *tele.Bot
	sink    Sink
	log     *zap.Logger
	timeout time.Duration
}

func (b *Bot) handleCommands() {
	simple := map[string]input.Command{
		"/equalize": input.CmdEqualize,
		"/status":   input.CmdStatus,
		"/help":     input.CmdHelp,
	}
	for endpoint, cmd := range simple {
		cmd := cmd
		b.b.Handle(endpoint, func(context tele.Context) error {
			return b.reply(context, input.Key{Command: cmd})
		})
	}

	b.b.Handle("/radius", func(context tele.Context) error {
		cmd, err := radiusCommand(context.Message().Payload)
		if err != nil {
			return context.Reply(err.Error())
		}
		return b.reply(context, input.Key{Command: cmd})
	})

	b.b.Handle("/load", func(context tele.Context) error {
		path := strings.TrimSpace(context.Message().Payload)
		if path == "" {
			return context.Reply("usage: /load <path|url|wallhaven:query>")
		}
		return b.reply(context, input.Key{Command: input.CmdLoad, Arg: path})
	})

	b.b.Handle("/save", func(context tele.Context) error {
		return b.reply(context, input.Key{Command: input.CmdSave, Arg: strings.TrimSpace(context.Message().Payload)})
	})

	b.b.Handle("/snapshot", func(context tele.Context) error {
		res, err := b.call(input.Key{Command: input.CmdSnapshot})
		if err != nil {
			return context.Reply(fmt.Sprintf("snapshot failed: %s", err))
		}
		if res.Err != nil {
			return context.Reply(fmt.Sprintf("snapshot failed: %s", res.Err))
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, res.Image, imaging.PNG); err != nil {
			return context.Reply(fmt.Sprintf("encode failed: %s", err))
		}

		caption := fmt.Sprintf("%dx%d, %s", res.Width, res.Height, bytesize.New(float64(buf.Len())).String())
		return context.Reply(&tele.Photo{File: tele.FromReader(&buf), Caption: caption})
	})
}

func (b *Bot) handleWindow() {
	b.b.Handle("/drag", func(context tele.Context) error {
		evs, err := dragEvents(context.Message().Payload)
		if err != nil {
			return context.Reply(err.Error())
		}

		for _, ev := range evs {
			b.sink.Post(ev)
		}
		return b.reply(context, input.Key{Command: input.CmdStatus})
	})

	b.b.Handle("/resize", func(context tele.Context) error {
		w, h, err := windowSize(context.Message().Payload)
		if err != nil {
			return context.Reply(err.Error())
		}

		b.sink.Resize(w, h)
		return b.reply(context, input.Key{Command: input.CmdStatus})
	})
}

// call posts key and waits for the editor loop to run it.
func (b *Bot) call(key input.Key) (input.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	reply := make(chan input.Result, 1)
	key.Reply = func(res input.Result) {
		reply <- res
	}
	b.sink.Post(key)

	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return input.Result{}, fmt.Errorf("%s timed out: %w", key.Command, ctx.Err())
	}
}

func (b *Bot) reply(context tele.Context, key input.Key) error {
	res, err := b.call(key)
	if err != nil {
		b.log.With(zap.Error(err)).Warn("command lost")
		return context.Reply(err.Error())
	}
	return context.Reply(describe(key.Command, res))
}

func (b *Bot) Start() {
	b.handleCommands()
	b.handleWindow()
	b.log.With(zap.String("user", b.b.Me.Username)).Info("bot started")
	go b.b.Start()
}

func (b *Bot) Stop() {
	// telebot blocks on Stop until the running poll returns
	go b.b.Stop()
}
