package reply

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

const testDate = 1700000000

var (
	testChannel      = model.DialogIDFromChannel(1)
	otherChannel     = model.DialogIDFromChannel(5)
	errResolveFailed = errors.New("resolve failed")
)

type testOptions map[string]int64

func (o testOptions) Int(name string) int64 { return o[name] }

type failingResolver struct{}

func (failingResolver) ResolveOrigin(tg.MessageFwdHeader) (origin.Origin, error) {
	return origin.Origin{}, errResolveFailed
}

func testEnv() Env {
	return Env{
		Options: testOptions{
			OptionQuoteLengthMax: 1024,
			OptionSessionCount:   1,
		},
		Origins:  origin.Resolver{},
		Contents: content.NewManager(),
		Forwarded: ForwardedInfoFunc(func(model.MessageFullID) ForwardedInfo {
			return ForwardedInfo{}
		}),
		SelfID: 777,
	}
}

func serverID(id int) model.MessageID {
	return model.MessageIDFromServer(model.ServerMessageID(id))
}

func ft(s string, entities ...model.MessageEntity) model.FormattedText {
	return model.FormattedText{Text: s, Entities: entities}
}

func boldEntity(offset, length int32) model.MessageEntity {
	return model.MessageEntity{Type: model.EntityBold, Offset: offset, Length: length}
}

func channelPostHeader(channel int64, post int) tg.MessageFwdHeader {
	var fwd tg.MessageFwdHeader
	fwd.Date = testDate
	fwd.SetFromID(&tg.PeerChannel{ChannelID: channel})
	fwd.SetChannelPost(post)
	return fwd
}

func photoMedia(id int64) *tg.MessageMediaPhoto {
	m := &tg.MessageMediaPhoto{}
	m.SetPhoto(&tg.Photo{ID: id})
	return m
}
