// Package repository keeps the messages the client knows about.
package repository

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

var ErrNotFound = errors.New("message not found")

// Message is what is known about a message beyond its reply info.
type Message struct {
	ID   model.MessageFullID
	Date int32
	// Sender is a user, or a chat for anonymous admins and channel posts.
	SenderUserID    model.UserID
	SenderDialogID  model.DialogID
	AuthorSignature string
	IsChannelPost   bool
	// ForwardOrigin is set for forwarded messages.
	ForwardOrigin origin.Origin
	ForwardDate   int32
	Content       content.Content
}

type MessageRepository interface {
	SaveMessage(ctx context.Context, msg *Message) error
	GetMessage(ctx context.Context, id model.MessageFullID) (*Message, error)
	// GetMessages returns the messages of the dialog, newest first.
	GetMessages(ctx context.Context, dialogID model.DialogID) ([]Message, error)
	// DeleteMessages forgets ids in the dialog. A zero dialog stands for all
	// private chats and basic groups, whose deletions come without a peer.
	DeleteMessages(ctx context.Context, dialogID model.DialogID, ids []model.MessageID) error
	IsDeleted(ctx context.Context, id model.MessageFullID) (bool, error)
}
