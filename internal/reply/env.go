// Package reply interprets, normalizes and compares the reply metadata of
// messages.
package reply

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"go.uber.org/multierr"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

// Option names read through Options.
const (
	OptionQuoteLengthMax = "message_reply_quote_length_max"
	OptionSessionCount   = "session_count"
)

// DefaultQuoteDriftMargin is how much shorter than the maximum length two
// differing automatic quotes must be for the difference to count. Longer
// quotes may have been truncated differently by server and client.
const DefaultQuoteDriftMargin = 70

type Options interface {
	Int(name string) int64
}

type OriginResolver interface {
	ResolveOrigin(h tg.MessageFwdHeader) (origin.Origin, error)
}

// Contents is the content subsystem as seen by reply info.
type Contents interface {
	FromMedia(caption model.FormattedText, media tg.MessageMediaClass, owner model.DialogID, date int32, isCopy bool) (content.Content, error)
	IsSupportedReply(t content.Type) bool
	Duplicate(c content.Content, owner model.DialogID, dup content.DupType) content.Content
	Compare(old, updated content.Content) (needUpdate, changed bool)
	Text(c content.Content) (model.FormattedText, bool)
	WithText(c content.Content, t model.FormattedText) content.Content
	FileIDs(c content.Content) []content.FileID
	MinUserIDs(c content.Content) []model.UserID
	MinChannelIDs(c content.Content) []model.ChannelID
	AddDependencies(d *deps.Dependencies, c content.Content, isBot bool)
	Register(c content.Content)
	Unregister(c content.Content)
	NeedReget(c content.Content) bool
}

// ForwardedInfo describes a locally known message as it would look when
// forwarded. The zero value means the message is unknown.
type ForwardedInfo struct {
	OriginDate int32
	Origin     origin.Origin
	Content    content.Content
}

type ForwardedInfoGetter interface {
	ForwardedMessageInfo(id model.MessageFullID) ForwardedInfo
}

type ForwardedInfoFunc func(id model.MessageFullID) ForwardedInfo

func (f ForwardedInfoFunc) ForwardedMessageInfo(id model.MessageFullID) ForwardedInfo {
	return f(id)
}

// Env bundles the collaborators reply info needs.
type Env struct {
	Options   Options
	Origins   OriginResolver
	Contents  Contents
	Forwarded ForwardedInfoGetter
	// SelfID owns the content of cloned values.
	SelfID model.UserID
	// QuoteDriftMargin overrides DefaultQuoteDriftMargin when positive.
	QuoteDriftMargin int64
}

func (e Env) quoteLengthMax() int64 { return e.Options.Int(OptionQuoteLengthMax) }

func (e Env) quoteDriftMargin() int64 {
	if e.QuoteDriftMargin > 0 {
		return e.QuoteDriftMargin
	}
	return DefaultQuoteDriftMargin
}

// hasQTSMessages reports whether messages of the dialog may arrive out of
// order through several sessions.
func (e Env) hasQTSMessages(d model.DialogID) bool {
	switch d.Type() {
	case model.DialogTypeUser, model.DialogTypeChat:
		return e.Options.Int(OptionSessionCount) > 1
	default:
		return false
	}
}

// Anomalies found while building reply info. Each one is recovered from by
// dropping the offending part.
var (
	ErrInvalidTarget            = errors.New("invalid replied message")
	ErrInvalidTargetChat        = errors.New("invalid replied chat")
	ErrSelfReply                = errors.New("reply to self")
	ErrFutureReply              = errors.New("reply to a newer message")
	ErrTargetChatWithoutMessage = errors.New("replied chat without replied message")
	ErrScheduledCrossChat       = errors.New("scheduled reply to another chat")
	ErrScheduledForwardInfo     = errors.New("scheduled reply with forward info")
	ErrInvalidOriginDate        = errors.New("invalid origin date")
	ErrOriginResolution         = errors.New("unresolved origin")
	ErrContentConstruction      = errors.New("invalid replied content")
	ErrUnsupportedContent       = errors.New("unsupported replied content")
	ErrMalformedQuote           = errors.New("malformed quote")
	ErrUnresolvedExternalReply  = errors.New("unresolved reply to another chat")
)

// ErrExternalReply is returned for values that can't be sent back as is.
var ErrExternalReply = errors.New("reply to a message from another chat")

// Result is a constructed value together with the anomalies seen on the way.
type Result struct {
	Info      Info
	Anomalies []error
}

// Err combines the anomalies. It is nil for clean input.
func (r Result) Err() error { return multierr.Combine(r.Anomalies...) }

func (r *Result) report(err error) { r.Anomalies = append(r.Anomalies, err) }
