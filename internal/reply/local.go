package reply

import (
	"github.com/go-faster/errors"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

// FromInput builds reply info for a message sent by the current user. Replies
// to other chats are resolved from locally known messages only.
func FromInput(env Env, in Input) Result {
	var r Result
	if !in.MessageID.IsValid() {
		return r
	}
	if in.DialogID != 0 && !in.DialogID.IsValid() {
		r.report(errors.Wrapf(ErrInvalidTargetChat, "reply to %s in %s", in.MessageID, in.DialogID))
		return r
	}

	info := &r.Info
	info.messageID = in.MessageID
	if !in.Quote.IsEmpty() {
		info.quote = in.Quote.Clone()
		info.quotePosition = max(0, in.QuotePosition)
		info.isQuoteManual = true
	}
	if in.DialogID == 0 {
		return r
	}

	target := model.MessageFullID{DialogID: in.DialogID, MessageID: in.MessageID}
	fwd := env.Forwarded.ForwardedMessageInfo(target)
	if fwd.OriginDate == 0 || fwd.Origin.IsEmpty() || fwd.Content == nil {
		r.report(errors.Wrapf(ErrUnresolvedExternalReply, "%s", target))
		return Result{Anomalies: r.Anomalies}
	}

	info.originDate = fwd.OriginDate
	info.origin = fwd.Origin
	info.content = fwd.Content
	if t, ok := env.Contents.Text(info.content); ok {
		if !info.isQuoteManual {
			info.quote, info.quotePosition, _ = normalizeQuote(rawQuote{
				text:      t.Text,
				entities:  t.Entities,
				maxLength: env.quoteLengthMax(),
			})
		}
		info.content = env.Contents.WithText(info.content, model.FormattedText{})
	}

	switch full := info.origin.MessageFullID(); {
	case full.MessageID.IsValid():
		info.messageID = full.MessageID
		info.dialogID = full.DialogID
	case in.DialogID.Type() == model.DialogTypeChannel:
		info.messageID = 0
		info.dialogID = in.DialogID
	default:
		info.messageID = 0
	}
	return r
}
