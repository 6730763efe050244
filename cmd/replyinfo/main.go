package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"github.com/zelenin/go-tdlib/client"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	replyclient "github.com/NguyenHuy1812/telegram-reply-info/internal/client"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/config"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/logger"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/options"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/reply"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/repository"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/tdapi"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/usecase"
)

type record struct {
	DialogID  int64                         `json:"dialog_id"`
	MessageID int64                         `json:"message_id"`
	Summary   string                        `json:"summary"`
	Replaced  bool                          `json:"replaced,omitempty"`
	Warning   bool                          `json:"warning,omitempty"`
	Anomalies []string                      `json:"anomalies,omitempty"`
	ReplyTo   *client.MessageReplyToMessage `json:"reply_to,omitempty"`
	Users     []model.UserID                `json:"users,omitempty"`
	Dialogs   []model.DialogID              `json:"dialogs,omitempty"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	configPath := flag.String("config", "", "path to the YAML config file")
	inPath := flag.String("in", "", "file with base64 encoded updates, one per line (default stdin)")
	flag.Parse()

	if err := run(ctx, *configPath, *inPath, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\rClosed")
			os.Exit(0)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, inPath string, out io.Writer) (rerr error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	defaults := map[string]int64{
		reply.OptionQuoteLengthMax: cfg.Options.QuoteLengthMax,
		reply.OptionSessionCount:   cfg.Options.SessionCount,
	}
	opts := options.New(defaults)
	if cfg.State.Path != "" {
		if opts, err = options.Open(cfg.State.Path, defaults); err != nil {
			return err
		}
	}
	defer func() { multierr.AppendInto(&rerr, opts.Close()) }()

	in := io.Reader(os.Stdin)
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	env := reply.Env{
		Options:          opts,
		Origins:          origin.Resolver{},
		Contents:         content.NewManager(),
		SelfID:           model.UserID(cfg.Reply.SelfUserID),
		QuoteDriftMargin: cfg.Reply.QuoteDriftMargin,
	}

	var (
		mu      sync.Mutex
		enc     = json.NewEncoder(out)
		handler *usecase.MessageHandler
	)
	handler = usecase.NewMessageHandler(env, repository.NewMemory(), usecase.Options{
		Logger:         log,
		AnomalyLimiter: rate.NewLimiter(rate.Every(cfg.Reply.AnomalyLogInterval), cfg.Reply.AnomalyLogBurst),
		OnReply: func(o usecase.Observation) {
			rec := record{
				DialogID:  int64(o.Message.DialogID),
				MessageID: int64(o.Message.MessageID),
				Summary:   o.Info.String(),
				Replaced:  o.Replaced,
				Warning:   o.Warning,
			}
			for _, a := range o.Anomalies {
				rec.Anomalies = append(rec.Anomalies, a.Error())
			}
			if obj, ok := handler.Object(o.Message); ok {
				rec.ReplyTo = tdapi.ReplyTo(obj)
			}
			if d, ok := handler.Dependencies(o.Message); ok {
				rec.Users = d.UserIDs()
				rec.Dialogs = d.DialogIDs()
			}

			mu.Lock()
			defer mu.Unlock()
			if err := enc.Encode(rec); err != nil {
				log.Warn("Write record", zap.Error(err))
			}
		},
	})
	defer handler.Close()

	d := tg.NewUpdateDispatcher()
	replyclient.Register(d, handler)

	log.Info("Replaying updates", zap.String("input", inPath))
	if err := replyclient.Replay(ctx, in, d); err != nil {
		return errors.Wrap(err, "replay")
	}
	log.Info("Done")
	return nil
}
