// Package client feeds MTProto updates to the message handler.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"io"

	"github.com/go-faster/errors"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
	"go.uber.org/multierr"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/usecase"
)

const maxLineSize = 16 << 20

// UpdateHandler is implemented by tg.UpdateDispatcher.
type UpdateHandler interface {
	Handle(ctx context.Context, u tg.UpdatesClass) error
}

// Register subscribes h to the updates carrying messages and deletions.
func Register(d tg.UpdateDispatcher, h *usecase.MessageHandler) {
	d.OnNewMessage(h.HandleNewMessage)
	d.OnNewChannelMessage(h.HandleNewChannelMessage)
	d.OnEditMessage(h.HandleEditMessage)
	d.OnEditChannelMessage(h.HandleEditChannelMessage)
	d.OnNewScheduledMessage(h.HandleNewScheduledMessage)
	d.OnMessageID(h.HandleMessageID)
	d.OnDeleteMessages(h.HandleDeleteMessages)
	d.OnDeleteChannelMessages(h.HandleDeleteChannelMessages)
	d.OnDeleteScheduledMessages(h.HandleDeleteScheduledMessages)
}

// Replay reads base64 encoded TL Updates, one per line, and passes them to
// handler. Blank lines and lines starting with # are skipped. Decoding
// errors stop the replay; handler errors are collected and returned once
// the input is exhausted.
func Replay(ctx context.Context, r io.Reader, handler UpdateHandler) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var handleErr error
	for line := 1; sc.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}
		u, err := DecodeLine(raw)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if err := handler.Handle(ctx, u); err != nil {
			handleErr = multierr.Append(handleErr, errors.Wrapf(err, "line %d", line))
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read updates")
	}
	return handleErr
}

func DecodeLine(line []byte) (tg.UpdatesClass, error) {
	data := make([]byte, base64.StdEncoding.DecodedLen(len(line)))
	n, err := base64.StdEncoding.Decode(data, line)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64")
	}
	u, err := tg.DecodeUpdates(&bin.Buffer{Buf: data[:n]})
	if err != nil {
		return nil, errors.Wrap(err, "decode updates")
	}
	return u, nil
}

// EncodeLine is the inverse of DecodeLine, without the line break.
func EncodeLine(u tg.UpdatesClass) ([]byte, error) {
	var b bin.Buffer
	if err := u.Encode(&b); err != nil {
		return nil, errors.Wrap(err, "encode updates")
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(b.Len()))
	base64.StdEncoding.Encode(out, b.Raw())
	return out, nil
}
