package reply

import (
	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

type TextQuote struct {
	Text     model.FormattedText
	Position int32
	IsManual bool
}

// ReplyToMessage is the public form of reply info.
type ReplyToMessage struct {
	// ChatID is zero when the replied message is unknown.
	ChatID         int64
	MessageID      int64
	Quote          *TextQuote
	Origin         *origin.Origin
	OriginSendDate int32
	Content        content.Content
}

// Object projects the value for a message in owner. Content that wouldn't
// add anything to the quote is omitted.
func (i Info) Object(env Env, owner model.DialogID) *ReplyToMessage {
	chat := owner
	if i.dialogID.IsValid() {
		chat = i.dialogID
	}
	obj := &ReplyToMessage{
		ChatID:         int64(chat),
		MessageID:      int64(i.messageID),
		OriginSendDate: i.originDate,
	}
	if i.messageID == 0 {
		obj.ChatID = 0
	}
	if !i.quote.IsEmpty() {
		obj.Quote = &TextQuote{
			Text:     i.quote.Clone(),
			Position: i.quotePosition,
			IsManual: i.isQuoteManual,
		}
	}
	if !i.origin.IsEmpty() {
		o := i.origin
		obj.Origin = &o
	}
	switch c := i.content.(type) {
	case nil, content.Unsupported:
	case content.Text:
		if c.HasPreview() {
			obj.Content = env.Contents.Duplicate(c, chat, content.DupCopy)
		}
	default:
		obj.Content = env.Contents.Duplicate(c, chat, content.DupCopy)
	}
	return obj
}
