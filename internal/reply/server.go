package reply

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/text"
)

// FromHeader interprets the reply header of the message id in owner, sent at
// date. Inconsistent parts of the header are dropped and reported in the
// result.
func FromHeader(env Env, h *tg.MessageReplyHeader, owner model.DialogID, id model.MessageID, date int32) Result {
	var r Result
	if h == nil {
		return r
	}
	info := &r.Info
	msg := model.MessageFullID{DialogID: owner, MessageID: id}

	rawID, hasID := h.GetReplyToMsgID()
	peer, hasPeer := h.GetReplyToPeerID()
	if h.GetReplyToScheduled() {
		info.messageID = model.ScheduledMessageID(model.ScheduledServerMessageID(rawID), date)
		switch {
		case !id.IsValidScheduled() || !info.messageID.IsValidScheduled():
			if hasID {
				r.report(errors.Wrapf(ErrInvalidTarget, "scheduled reply to %d in %s", rawID, msg))
			}
			info.messageID = 0
		case hasPeer:
			r.report(errors.Wrapf(ErrScheduledCrossChat, "%s replies to %s in %v", msg, info.messageID, peer))
			info.messageID = 0
		case info.messageID == id:
			r.report(errors.Wrapf(ErrSelfReply, "%s", msg))
			info.messageID = 0
		}
		_, hasFrom := h.GetReplyFrom()
		_, hasMedia := h.GetReplyMedia()
		if hasFrom || hasMedia {
			r.report(errors.Wrapf(ErrScheduledForwardInfo, "%s", msg))
		}
	} else {
		if hasID && rawID != 0 {
			info.messageID = model.MessageIDFromServer(model.ServerMessageID(rawID))
			if hasPeer {
				info.dialogID = model.DialogIDFromPeer(peer)
				if !info.dialogID.IsValid() {
					r.report(errors.Wrapf(ErrInvalidTargetChat, "%s replies to %v", msg, peer))
					info.messageID, info.dialogID = 0, 0
				}
			}
			switch {
			case info.messageID == 0:
			case !info.messageID.IsValid():
				r.report(errors.Wrapf(ErrInvalidTarget, "%s replies to %d", msg, rawID))
				info.messageID, info.dialogID = 0, 0
			case !id.IsScheduled() && info.dialogID == 0 && info.messageID == id:
				r.report(errors.Wrapf(ErrSelfReply, "%s", msg))
				info.messageID = 0
			case !id.IsScheduled() && info.dialogID == 0 && info.messageID > id && !env.hasQTSMessages(owner):
				r.report(errors.Wrapf(ErrFutureReply, "%s replies to %s", msg, info.messageID))
				info.messageID = 0
			}
		} else if hasPeer {
			r.report(errors.Wrapf(ErrTargetChatWithoutMessage, "%s replies to %v", msg, peer))
		}

		if fwd, ok := h.GetReplyFrom(); ok {
			info.origin, info.originDate = resolveOrigin(env, &r, fwd, msg)
			if media, ok := h.GetReplyMedia(); ok && !info.origin.IsEmpty() {
				info.content = buildContent(env, &r, media, owner, info.originDate, msg)
			}
		}
	}

	quoteText, _ := h.GetQuoteText()
	if (!info.origin.IsEmpty() || info.messageID != 0) && quoteText != "" {
		entities, _ := h.GetQuoteEntities()
		offset, _ := h.GetQuoteOffset()
		info.isQuoteManual = h.GetQuote()
		var err error
		info.quote, info.quotePosition, err = normalizeQuote(rawQuote{
			text:     quoteText,
			entities: text.EntitiesFromTG(entities),
			offset:   offset,
			manual:   info.isQuoteManual,
		})
		if err != nil {
			r.report(errors.Wrapf(err, "%s", msg))
		}
	}
	return r
}
