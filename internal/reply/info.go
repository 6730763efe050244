package reply

import (
	"fmt"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

// Info describes the message a message replies to. Values are immutable;
// the zero value means "no reply".
//
// A non-zero dialog id means the replied message is in another chat. A
// non-empty origin means it is known only from forward-like metadata.
type Info struct {
	messageID     model.MessageID
	dialogID      model.DialogID
	originDate    int32
	origin        origin.Origin
	content       content.Content
	quote         model.FormattedText
	quotePosition int32
	isQuoteManual bool
}

// Input is a locally authored reply intent.
type Input struct {
	MessageID     model.MessageID
	DialogID      model.DialogID
	Quote         model.FormattedText
	QuotePosition int32
}

func (i Info) MessageID() model.MessageID { return i.messageID }

func (i Info) DialogID() model.DialogID { return i.dialogID }

func (i Info) OriginDate() int32 { return i.originDate }

func (i Info) Origin() origin.Origin { return i.origin }

func (i Info) Quote() model.FormattedText { return i.quote }

func (i Info) QuotePosition() int32 { return i.quotePosition }

func (i Info) IsQuoteManual() bool { return i.isQuoteManual }

// Content is nil when no snapshot is attached.
func (i Info) Content() content.Content { return i.content }

// IsExternal reports whether the replied message is known only from
// forward-like metadata.
func (i Info) IsExternal() bool { return !i.origin.IsEmpty() }

func (i Info) IsEmpty() bool {
	return i.messageID == 0 && i.dialogID == 0 && i.originDate == 0 &&
		i.origin.IsEmpty() && i.quote.IsEmpty() && i.content == nil
}

// Clone returns a value that shares nothing with i. The content is
// duplicated as if forwarded to the current user.
func (i Info) Clone(env Env) Info {
	out := i
	out.quote = i.quote.Clone()
	if i.content != nil {
		out.content = env.Contents.Duplicate(i.content, model.DialogIDFromUser(env.SelfID), content.DupForward)
	}
	return out
}

// Equal compares every field. Contents are equal when neither a visible
// change nor a metadata update separates them.
func Equal(env Env, a, b Info) bool {
	if a.messageID != b.messageID ||
		a.dialogID != b.dialogID ||
		a.originDate != b.originDate ||
		a.origin != b.origin ||
		a.quotePosition != b.quotePosition ||
		a.isQuoteManual != b.isQuoteManual ||
		!a.quote.Equal(b.quote) {
		return false
	}
	if a.content == nil || b.content == nil {
		return a.content == nil && b.content == nil
	}
	needUpdate, changed := env.Contents.Compare(a.content, b.content)
	return !needUpdate && !changed
}

// NeedReget reports whether the replied content must be fetched again.
func (i Info) NeedReget(env Env) bool {
	return i.content != nil && env.Contents.NeedReget(i.content)
}

func (i Info) FileIDs(env Env) []content.FileID {
	if i.content == nil {
		return nil
	}
	return env.Contents.FileIDs(i.content)
}

// MinUserIDs returns users that may be known only from this value.
func (i Info) MinUserIDs(env Env) []model.UserID {
	var ids []model.UserID
	if i.dialogID.Type() == model.DialogTypeUser {
		ids = append(ids, i.dialogID.UserID())
	}
	ids = i.origin.AppendUserIDs(ids)
	if i.content != nil {
		ids = append(ids, env.Contents.MinUserIDs(i.content)...)
	}
	return ids
}

// MinChannelIDs returns channels that may be known only from this value.
func (i Info) MinChannelIDs(env Env) []model.ChannelID {
	var ids []model.ChannelID
	if i.dialogID.Type() == model.DialogTypeChannel {
		ids = append(ids, i.dialogID.ChannelID())
	}
	ids = i.origin.AppendChannelIDs(ids)
	if i.content != nil {
		ids = append(ids, env.Contents.MinChannelIDs(i.content)...)
	}
	return ids
}

func (i Info) AddDependencies(env Env, d *deps.Dependencies, isBot bool) {
	d.AddDialogAndDependencies(i.dialogID)
	i.origin.AddDependencies(d)
	d.AddFormattedText(i.quote)
	if i.content != nil {
		env.Contents.AddDependencies(d, i.content, isBot)
	}
}

// RegisterContent must be balanced by UnregisterContent once the value is
// replaced or dropped.
func (i Info) RegisterContent(env Env) {
	if i.content != nil {
		env.Contents.Register(i.content)
	}
}

func (i Info) UnregisterContent(env Env) {
	if i.content != nil {
		env.Contents.Unregister(i.content)
	}
}

// InputReplyTo turns the value back into an intent, e.g. to resend the
// message. External replies have no such form.
func (i Info) InputReplyTo() (Input, error) {
	if i.IsExternal() {
		return Input{}, ErrExternalReply
	}
	if !i.messageID.IsValid() {
		return Input{}, nil
	}
	return Input{
		MessageID:     i.messageID,
		DialogID:      i.dialogID,
		Quote:         i.quote.Clone(),
		QuotePosition: i.quotePosition,
	}, nil
}

// SameChatReplyToMessageID returns the replied message id if it is in the
// owning chat.
func (i Info) SameChatReplyToMessageID(ignoreExternal bool) model.MessageID {
	if i.dialogID != 0 {
		return 0
	}
	if ignoreExternal && i.IsExternal() {
		return 0
	}
	return i.messageID
}

// ReplyMessageFullID resolves the replied message against the owning chat.
func (i Info) ReplyMessageFullID(owner model.DialogID, ignoreExternal bool) model.MessageFullID {
	if i.messageID == 0 {
		return model.MessageFullID{}
	}
	if ignoreExternal && i.IsExternal() {
		return model.MessageFullID{}
	}
	d := i.dialogID
	if d == 0 {
		d = owner
	}
	return model.MessageFullID{DialogID: d, MessageID: i.messageID}
}

func (i Info) String() string {
	s := fmt.Sprintf("reply to %s", i.messageID)
	if i.dialogID != 0 {
		s += fmt.Sprintf(" in %s", i.dialogID)
	}
	if i.originDate != 0 {
		s += fmt.Sprintf(" sent at %d by %s", i.originDate, i.origin)
	}
	if !i.quote.IsEmpty() {
		manual := ""
		if i.isQuoteManual {
			manual = " manually"
		}
		s += fmt.Sprintf(" with %d%s quoted bytes at position %d", len(i.quote.Text), manual, i.quotePosition)
	}
	if i.content != nil {
		s += fmt.Sprintf(" and content of the type %s", i.content.Type())
	}
	return s
}
