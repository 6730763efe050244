// Package origin describes who originally sent a message that is replied to
// or forwarded from another chat.
package origin

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

type Kind uint8

const (
	KindEmpty Kind = iota
	KindUser
	KindHiddenUser
	KindChat
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindHiddenUser:
		return "hidden user"
	case KindChat:
		return "chat"
	case KindChannel:
		return "channel"
	default:
		return "empty"
	}
}

// Origin is comparable with ==. The zero value is the empty origin.
type Origin struct {
	SenderUserID    model.UserID
	SenderDialogID  model.DialogID
	MessageID       model.MessageID
	AuthorSignature string
	SenderName      string
}

func User(id model.UserID) Origin { return Origin{SenderUserID: id} }

func HiddenUser(name string) Origin { return Origin{SenderName: name} }

func Chat(id model.DialogID, signature string) Origin {
	return Origin{SenderDialogID: id, AuthorSignature: signature}
}

func Channel(id model.DialogID, msg model.MessageID, signature string) Origin {
	return Origin{SenderDialogID: id, MessageID: msg, AuthorSignature: signature}
}

func (o Origin) IsEmpty() bool {
	return !o.SenderUserID.IsValid() && !o.SenderDialogID.IsValid() && o.SenderName == ""
}

func (o Origin) Kind() Kind {
	switch {
	case o.SenderUserID.IsValid():
		return KindUser
	case o.SenderDialogID.IsValid() && o.MessageID.IsValid():
		return KindChannel
	case o.SenderDialogID.IsValid():
		return KindChat
	case o.SenderName != "":
		return KindHiddenUser
	default:
		return KindEmpty
	}
}

func (o Origin) HasSenderSignature() bool {
	return o.AuthorSignature != "" || o.SenderName != ""
}

// EqualIgnoringSignature compares the sender identity only. The name of a
// hidden user is signature data, so any two hidden users are equal.
func (o Origin) EqualIgnoringSignature(other Origin) bool {
	if o.Kind() == KindHiddenUser || other.Kind() == KindHiddenUser {
		return o.Kind() == other.Kind()
	}
	return o.SenderUserID == other.SenderUserID &&
		o.SenderDialogID == other.SenderDialogID &&
		o.MessageID == other.MessageID
}

// MessageFullID is valid only for channel posts.
func (o Origin) MessageFullID() model.MessageFullID {
	if !o.MessageID.IsValid() {
		return model.MessageFullID{}
	}
	return model.MessageFullID{DialogID: o.SenderDialogID, MessageID: o.MessageID}
}

func (o Origin) AppendUserIDs(ids []model.UserID) []model.UserID {
	if o.SenderUserID.IsValid() {
		ids = append(ids, o.SenderUserID)
	}
	return ids
}

func (o Origin) AppendChannelIDs(ids []model.ChannelID) []model.ChannelID {
	if o.SenderDialogID.Type() == model.DialogTypeChannel {
		ids = append(ids, o.SenderDialogID.ChannelID())
	}
	return ids
}

func (o Origin) AddDependencies(d *deps.Dependencies) {
	d.AddUser(o.SenderUserID)
	d.AddDialogAndDependencies(o.SenderDialogID)
}

func (o Origin) String() string {
	switch o.Kind() {
	case KindUser:
		return fmt.Sprintf("user %d", o.SenderUserID)
	case KindHiddenUser:
		return fmt.Sprintf("hidden user %q", o.SenderName)
	case KindChat:
		return fmt.Sprintf("%s signed %q", o.SenderDialogID, o.AuthorSignature)
	case KindChannel:
		return fmt.Sprintf("%s in %s signed %q", o.MessageID, o.SenderDialogID, o.AuthorSignature)
	default:
		return "unknown sender"
	}
}

var (
	ErrInvalidSender    = errors.New("invalid sender")
	ErrInvalidChannelID = errors.New("invalid channel post id")
	ErrNoSender         = errors.New("forward header has no sender")
)

// Resolver resolves MTProto forward headers.
type Resolver struct{}

func (Resolver) ResolveOrigin(h tg.MessageFwdHeader) (Origin, error) {
	var o Origin
	if p, ok := h.GetFromID(); ok {
		d := model.DialogIDFromPeer(p)
		if !d.IsValid() {
			return Origin{}, errors.Wrapf(ErrInvalidSender, "peer %v", p)
		}
		if d.Type() == model.DialogTypeUser {
			o.SenderUserID = d.UserID()
		} else {
			o.SenderDialogID = d
		}
	}
	if post, ok := h.GetChannelPost(); ok {
		o.MessageID = model.MessageIDFromServer(model.ServerMessageID(post))
		if !o.MessageID.IsValid() {
			return Origin{}, errors.Wrapf(ErrInvalidChannelID, "post %d", post)
		}
		if o.SenderDialogID.Type() != model.DialogTypeChannel {
			return Origin{}, errors.Wrapf(ErrInvalidSender, "post %d from %s", post, o.SenderDialogID)
		}
	}
	o.AuthorSignature, _ = h.GetPostAuthor()
	if o.SenderUserID == 0 && o.SenderDialogID == 0 {
		o.SenderName, _ = h.GetFromName()
	}
	if o.IsEmpty() {
		return Origin{}, ErrNoSender
	}
	return o, nil
}
