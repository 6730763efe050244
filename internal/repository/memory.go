package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

// Memory is a MessageRepository living in process memory.
type Memory struct {
	mu       sync.RWMutex
	messages map[model.MessageFullID]Message
	// channel deletions are tracked per dialog, others by message id only
	deletedChannel map[model.MessageFullID]struct{}
	deletedCommon  map[model.MessageID]struct{}
}

var _ MessageRepository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		messages:       make(map[model.MessageFullID]Message),
		deletedChannel: make(map[model.MessageFullID]struct{}),
		deletedCommon:  make(map[model.MessageID]struct{}),
	}
}

func (r *Memory) SaveMessage(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !msg.ID.DialogID.IsValid() {
		return errors.Errorf("save %s: invalid dialog", msg.ID)
	}
	if !msg.ID.MessageID.IsValid() && !msg.ID.MessageID.IsValidScheduled() {
		return errors.Errorf("save %s: invalid message", msg.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = *msg
	return nil
}

func (r *Memory) GetMessage(ctx context.Context, id model.MessageFullID) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.messages[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return &msg, nil
}

func (r *Memory) GetMessages(ctx context.Context, dialogID model.DialogID) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var messages []Message
	for id, msg := range r.messages {
		if id.DialogID == dialogID {
			messages = append(messages, msg)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(messages, func(a, b Message) int {
		switch {
		case a.ID.MessageID > b.ID.MessageID:
			return -1
		case a.ID.MessageID < b.ID.MessageID:
			return 1
		default:
			return 0
		}
	})
	return messages, nil
}

func (r *Memory) DeleteMessages(ctx context.Context, dialogID model.DialogID, ids []model.MessageID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if dialogID.Type() == model.DialogTypeChannel {
		for _, id := range ids {
			full := model.MessageFullID{DialogID: dialogID, MessageID: id}
			delete(r.messages, full)
			r.deletedChannel[full] = struct{}{}
		}
		return nil
	}

	for _, id := range ids {
		r.deletedCommon[id] = struct{}{}
	}
	for full := range r.messages {
		if full.DialogID.Type() == model.DialogTypeChannel {
			continue
		}
		if dialogID != 0 && full.DialogID != dialogID {
			continue
		}
		if slices.Contains(ids, full.MessageID) {
			delete(r.messages, full)
		}
	}
	return nil
}

func (r *Memory) IsDeleted(ctx context.Context, id model.MessageFullID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id.DialogID.Type() == model.DialogTypeChannel {
		_, ok := r.deletedChannel[id]
		return ok, nil
	}
	_, ok := r.deletedCommon[id.MessageID]
	return ok, nil
}
