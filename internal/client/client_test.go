package client

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/require"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/options"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/reply"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/repository"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/usecase"
)

func channelUpdate(id, replyTo int) tg.UpdatesClass {
	m := &tg.Message{ID: id, PeerID: &tg.PeerChannel{ChannelID: 1}, Date: 1700000000, Message: "text"}
	if replyTo != 0 {
		h := &tg.MessageReplyHeader{}
		h.SetReplyToMsgID(replyTo)
		m.SetReplyTo(h)
	}
	return &tg.Updates{
		Updates: []tg.UpdateClass{&tg.UpdateNewChannelMessage{Message: m, Pts: id, PtsCount: 1}},
		Date:    1700000000,
	}
}

func newHandler(seen *[]usecase.Observation) *usecase.MessageHandler {
	env := reply.Env{
		Options:  options.New(map[string]int64{reply.OptionQuoteLengthMax: 1024}),
		Origins:  origin.Resolver{},
		Contents: content.NewManager(),
	}
	return usecase.NewMessageHandler(env, repository.NewMemory(), usecase.Options{
		OnReply: func(o usecase.Observation) { *seen = append(*seen, o) },
	})
}

func TestLineRoundTrip(t *testing.T) {
	t.Parallel()

	line, err := EncodeLine(channelUpdate(20, 5))
	require.NoError(t, err)

	u, err := DecodeLine(line)
	require.NoError(t, err)
	updates, ok := u.(*tg.Updates)
	require.True(t, ok)
	require.Len(t, updates.Updates, 1)

	msg := updates.Updates[0].(*tg.UpdateNewChannelMessage).Message.(*tg.Message)
	header, ok := msg.GetReplyTo()
	require.True(t, ok)
	id, ok := header.(*tg.MessageReplyHeader).GetReplyToMsgID()
	require.True(t, ok)
	require.Equal(t, 5, id)
}

func TestReplay(t *testing.T) {
	t.Parallel()

	var seen []usecase.Observation
	h := newHandler(&seen)
	d := tg.NewUpdateDispatcher()
	Register(d, h)

	var input bytes.Buffer
	input.WriteString("# channel history\n\n")
	for _, u := range []tg.UpdatesClass{channelUpdate(5, 0), channelUpdate(20, 5), channelUpdate(21, 21)} {
		line, err := EncodeLine(u)
		require.NoError(t, err)
		input.Write(line)
		input.WriteByte('\n')
	}

	require.NoError(t, Replay(context.Background(), &input, d))
	require.Len(t, seen, 2)

	full := model.MessageFullID{
		DialogID:  model.DialogIDFromChannel(1),
		MessageID: model.MessageIDFromServer(20),
	}
	require.Equal(t, full, seen[0].Message)
	info, ok := h.ReplyTo(full)
	require.True(t, ok)
	require.Equal(t, model.MessageIDFromServer(5), info.MessageID())

	require.ErrorIs(t, (reply.Result{Anomalies: seen[1].Anomalies}).Err(), reply.ErrSelfReply)
}

func TestReplayErrors(t *testing.T) {
	t.Parallel()

	var seen []usecase.Observation
	d := tg.NewUpdateDispatcher()
	Register(d, newHandler(&seen))

	err := Replay(context.Background(), strings.NewReader("not base64!\n"), d)
	require.ErrorContains(t, err, "line 1")

	bad := &tg.Updates{Updates: []tg.UpdateClass{&tg.UpdateNewMessage{
		Message: &tg.Message{ID: 1, PeerID: &tg.PeerUser{}},
	}}}
	line, err := EncodeLine(bad)
	require.NoError(t, err)
	good, err := EncodeLine(channelUpdate(20, 5))
	require.NoError(t, err)

	input := string(line) + "\n" + string(good) + "\n"
	err = Replay(context.Background(), strings.NewReader(input), d)
	require.ErrorContains(t, err, "line 1")
	require.Len(t, seen, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Replay(ctx, strings.NewReader(string(good)), d), context.Canceled)
}
