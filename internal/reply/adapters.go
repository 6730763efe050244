package reply

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

// resolveOrigin returns a zero date whenever the origin is unusable.
func resolveOrigin(env Env, r *Result, fwd tg.MessageFwdHeader, msg model.MessageFullID) (origin.Origin, int32) {
	if fwd.Date <= 0 {
		r.report(errors.Wrapf(ErrInvalidOriginDate, "%s: date %d", msg, fwd.Date))
		return origin.Origin{}, 0
	}
	o, err := env.Origins.ResolveOrigin(fwd)
	if err != nil {
		r.report(errors.Wrapf(ErrOriginResolution, "%s: %v", msg, err))
		return origin.Origin{}, 0
	}
	return o, int32(fwd.Date)
}

// buildContent snapshots replied media. The caption stays with the original
// message.
func buildContent(env Env, r *Result, media tg.MessageMediaClass, owner model.DialogID, date int32, msg model.MessageFullID) content.Content {
	if _, ok := media.(*tg.MessageMediaEmpty); ok || media == nil {
		return nil
	}
	c, err := env.Contents.FromMedia(model.FormattedText{}, media, owner, date, true)
	if err != nil {
		r.report(errors.Wrapf(ErrContentConstruction, "%s: %v", msg, err))
		return nil
	}
	if c == nil {
		return nil
	}
	if !env.Contents.IsSupportedReply(c.Type()) {
		r.report(errors.Wrapf(ErrUnsupportedContent, "%s: %s", msg, c.Type()))
		return nil
	}
	return c
}
