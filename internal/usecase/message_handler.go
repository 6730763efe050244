package usecase

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/reply"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/repository"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/text"
)

// Observation is reported for every reply info the handler stores.
type Observation struct {
	Message model.MessageFullID
	Info    reply.Info
	// Replaced is set when an earlier value of the message was replaced.
	Replaced bool
	// Warning is set when the replaced value was unexpectedly different.
	Warning   bool
	Anomalies []error
}

type Options struct {
	Logger *zap.Logger
	// AnomalyLimiter throttles anomaly logging. Nil logs every anomaly.
	AnomalyLimiter *rate.Limiter
	// OnReply is called after the handler lock is released.
	OnReply func(Observation)
	IsBot   bool
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.AnomalyLimiter == nil {
		o.AnomalyLimiter = rate.NewLimiter(rate.Inf, 0)
	}
	if o.OnReply == nil {
		o.OnReply = func(Observation) {}
	}
}

type trackedReply struct {
	info      reply.Info
	topThread model.MessageID
	yetUnsent bool
}

// OutgoingMessage is a message the current user is sending.
type OutgoingMessage struct {
	DialogID           model.DialogID
	RandomID           int64
	ReplyTo            reply.Input
	TopThreadMessageID model.MessageID
}

// MessageHandler keeps reply info of known messages in sync with updates.
type MessageHandler struct {
	env  reply.Env
	repo repository.MessageRepository
	opts Options
	log  *zap.Logger

	mu      sync.Mutex
	replies map[model.MessageFullID]trackedReply
	// unsent counts local messages per dialog
	unsent map[model.DialogID]int32
	// byRandomID and confirmed map outgoing messages to their server ids
	byRandomID map[int64]model.MessageFullID
	confirmed  map[model.MessageFullID]model.MessageFullID
}

// NewMessageHandler returns a handler using repo for known messages. Unless
// env already has one, the forwarded-message lookup reads repo.
func NewMessageHandler(env reply.Env, repo repository.MessageRepository, opts Options) *MessageHandler {
	opts.setDefaults()
	h := &MessageHandler{
		repo:       repo,
		opts:       opts,
		log:        opts.Logger.Named("reply"),
		replies:    make(map[model.MessageFullID]trackedReply),
		unsent:     make(map[model.DialogID]int32),
		byRandomID: make(map[int64]model.MessageFullID),
		confirmed:  make(map[model.MessageFullID]model.MessageFullID),
	}
	if env.Forwarded == nil {
		env.Forwarded = reply.ForwardedInfoFunc(h.forwardedInfo)
	}
	h.env = env
	return h
}

func (h *MessageHandler) HandleNewMessage(ctx context.Context, _ tg.Entities, u *tg.UpdateNewMessage) error {
	return h.handleMessage(ctx, u.Message, false)
}

func (h *MessageHandler) HandleNewChannelMessage(ctx context.Context, _ tg.Entities, u *tg.UpdateNewChannelMessage) error {
	return h.handleMessage(ctx, u.Message, false)
}

func (h *MessageHandler) HandleEditMessage(ctx context.Context, _ tg.Entities, u *tg.UpdateEditMessage) error {
	return h.handleMessage(ctx, u.Message, false)
}

func (h *MessageHandler) HandleEditChannelMessage(ctx context.Context, _ tg.Entities, u *tg.UpdateEditChannelMessage) error {
	return h.handleMessage(ctx, u.Message, false)
}

func (h *MessageHandler) HandleNewScheduledMessage(ctx context.Context, _ tg.Entities, u *tg.UpdateNewScheduledMessage) error {
	return h.handleMessage(ctx, u.Message, true)
}

// HandleMessageID binds a message sent with SendMessage to its server id.
func (h *MessageHandler) HandleMessageID(_ context.Context, _ tg.Entities, u *tg.UpdateMessageID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	local, ok := h.byRandomID[u.RandomID]
	if !ok {
		return nil
	}
	delete(h.byRandomID, u.RandomID)
	server := model.MessageFullID{
		DialogID:  local.DialogID,
		MessageID: model.MessageIDFromServer(model.ServerMessageID(u.ID)),
	}
	h.confirmed[server] = local
	return nil
}

func (h *MessageHandler) HandleDeleteMessages(ctx context.Context, _ tg.Entities, u *tg.UpdateDeleteMessages) error {
	return h.deleteMessages(ctx, 0, serverIDs(u.Messages))
}

func (h *MessageHandler) HandleDeleteChannelMessages(ctx context.Context, _ tg.Entities, u *tg.UpdateDeleteChannelMessages) error {
	channel := model.DialogIDFromChannel(model.ChannelID(u.ChannelID))
	if !channel.IsValid() {
		return errors.Errorf("delete messages in invalid channel %d", u.ChannelID)
	}
	return h.deleteMessages(ctx, channel, serverIDs(u.Messages))
}

func (h *MessageHandler) HandleDeleteScheduledMessages(_ context.Context, _ tg.Entities, u *tg.UpdateDeleteScheduledMessages) error {
	owner := model.DialogIDFromPeer(u.Peer)
	if !owner.IsValid() {
		return errors.Errorf("delete scheduled messages in invalid chat %v", u.Peer)
	}
	ids := make(map[model.ScheduledServerMessageID]struct{}, len(u.Messages))
	for _, id := range u.Messages {
		ids[model.ScheduledServerMessageID(id)] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for full, tracked := range h.replies {
		if full.DialogID != owner || !full.MessageID.IsScheduledServer() {
			continue
		}
		if _, ok := ids[full.MessageID.ScheduledServerID()]; ok {
			tracked.info.UnregisterContent(h.env)
			delete(h.replies, full)
		}
	}
	return nil
}

// SendMessage starts tracking a local message until the server confirms it
// through HandleMessageID and a new message update.
func (h *MessageHandler) SendMessage(ctx context.Context, out OutgoingMessage) (model.MessageFullID, error) {
	if !out.DialogID.IsValid() {
		return model.MessageFullID{}, errors.Errorf("send message to invalid chat %s", out.DialogID)
	}
	messages, err := h.repo.GetMessages(ctx, out.DialogID)
	if err != nil {
		return model.MessageFullID{}, errors.Wrap(err, "get last message")
	}
	var last model.ServerMessageID
	for _, msg := range messages {
		if msg.ID.MessageID.IsServer() {
			last = msg.ID.MessageID.ServerID()
			break
		}
	}

	res := reply.FromInput(h.env, out.ReplyTo)

	h.mu.Lock()
	h.unsent[out.DialogID]++
	full := model.MessageFullID{
		DialogID:  out.DialogID,
		MessageID: model.YetUnsentMessageID(last, h.unsent[out.DialogID]),
	}
	if out.RandomID != 0 {
		h.byRandomID[out.RandomID] = full
	}
	obs := h.storeLocked(ctx, full, full, res, trackedReply{
		info:      res.Info,
		topThread: out.TopThreadMessageID,
		yetUnsent: true,
	})
	h.mu.Unlock()

	h.observe(obs)
	return full, nil
}

// ReplyTo returns the reply info stored for the message.
func (h *MessageHandler) ReplyTo(id model.MessageFullID) (reply.Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tracked, ok := h.replies[id]
	return tracked.info, ok
}

func (h *MessageHandler) Object(id model.MessageFullID) (*reply.ReplyToMessage, bool) {
	info, ok := h.ReplyTo(id)
	if !ok {
		return nil, false
	}
	return info.Object(h.env, id.DialogID), true
}

// Dependencies returns what must be known to show the reply of the message.
func (h *MessageHandler) Dependencies(id model.MessageFullID) (*deps.Dependencies, bool) {
	info, ok := h.ReplyTo(id)
	if !ok {
		return nil, false
	}
	d := &deps.Dependencies{}
	info.AddDependencies(h.env, d, h.opts.IsBot)
	return d, true
}

// Close releases the content of every tracked reply.
func (h *MessageHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for full, tracked := range h.replies {
		tracked.info.UnregisterContent(h.env)
		delete(h.replies, full)
	}
}

func (h *MessageHandler) handleMessage(ctx context.Context, m tg.MessageClass, scheduled bool) error {
	msg, ok := m.(*tg.Message)
	if !ok {
		return nil
	}
	owner := model.DialogIDFromPeer(msg.PeerID)
	if !owner.IsValid() {
		return errors.Errorf("message %d in invalid chat %v", msg.ID, msg.PeerID)
	}
	date := int32(msg.Date)
	id := model.MessageIDFromServer(model.ServerMessageID(msg.ID))
	if scheduled {
		id = model.ScheduledMessageID(model.ScheduledServerMessageID(msg.ID), date)
	}
	if !id.IsValid() && !id.IsValidScheduled() {
		return errors.Errorf("invalid message %d in %s", msg.ID, owner)
	}
	full := model.MessageFullID{DialogID: owner, MessageID: id}

	record := h.messageRecord(full, msg)
	if err := h.repo.SaveMessage(ctx, record); err != nil {
		return errors.Wrapf(err, "save %s", full)
	}

	var (
		res       reply.Result
		topThread model.MessageID
	)
	if header, ok := msg.GetReplyTo(); ok {
		if rh, ok := header.(*tg.MessageReplyHeader); ok {
			res = reply.FromHeader(h.env, rh, owner, id, date)
			topThread = threadOf(rh, res.Info)
		}
	}

	h.mu.Lock()
	prev := full
	if local, ok := h.confirmed[full]; ok {
		delete(h.confirmed, full)
		prev = local
	}
	obs := h.storeLocked(ctx, prev, full, res, trackedReply{info: res.Info, topThread: topThread})
	h.mu.Unlock()

	h.observe(obs)
	return nil
}

// storeLocked replaces the reply tracked under prev with next tracked under
// full. Content registration moves to the new value.
func (h *MessageHandler) storeLocked(ctx context.Context, prev, full model.MessageFullID, res reply.Result, next trackedReply) Observation {
	obs := Observation{Message: full, Info: next.info, Anomalies: res.Anomalies}
	old, ok := h.replies[prev]
	if ok {
		obs.Replaced = true
		obs.Warning = reply.NeedChangedWarning(h.env, old.info, next.info, old.topThread, old.yetUnsent, h.replyToDeleted(ctx, full.DialogID))
		old.info.UnregisterContent(h.env)
		delete(h.replies, prev)
	}
	if !ok && next.info.IsEmpty() {
		return obs
	}
	next.info.RegisterContent(h.env)
	h.replies[full] = next

	if obs.Warning {
		h.log.Warn("Reply info changed unexpectedly",
			zap.Stringer("message", full),
			zap.Stringer("old", old.info),
			zap.Stringer("new", next.info),
		)
	}
	return obs
}

func (h *MessageHandler) observe(obs Observation) {
	if err := (reply.Result{Anomalies: obs.Anomalies}).Err(); err != nil && h.opts.AnomalyLimiter.Allow() {
		h.log.Error("Inconsistent reply info",
			zap.Stringer("message", obs.Message),
			zap.Error(err),
		)
	}
	if obs.Info.NeedReget(h.env) {
		h.log.Debug("Reply content needs reget", zap.Stringer("message", obs.Message))
	}
	if obs.Info.IsEmpty() && !obs.Replaced && len(obs.Anomalies) == 0 {
		return
	}
	h.opts.OnReply(obs)
}

func (h *MessageHandler) replyToDeleted(ctx context.Context, owner model.DialogID) func(reply.Info) bool {
	return func(info reply.Info) bool {
		target := info.ReplyMessageFullID(owner, false)
		if target.MessageID == 0 {
			return false
		}
		deleted, err := h.repo.IsDeleted(ctx, target)
		return err == nil && deleted
	}
}

func (h *MessageHandler) deleteMessages(ctx context.Context, dialog model.DialogID, ids []model.MessageID) error {
	if err := h.repo.DeleteMessages(ctx, dialog, ids); err != nil {
		return errors.Wrap(err, "delete messages")
	}
	deleted := make(map[model.MessageID]struct{}, len(ids))
	for _, id := range ids {
		deleted[id] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for full, tracked := range h.replies {
		if _, ok := deleted[full.MessageID]; !ok {
			continue
		}
		isChannel := full.DialogID.Type() == model.DialogTypeChannel
		if (dialog == 0 && isChannel) || (dialog != 0 && full.DialogID != dialog) {
			continue
		}
		tracked.info.UnregisterContent(h.env)
		delete(h.replies, full)
	}
	return nil
}

// messageRecord keeps what the forwarded-message lookup needs.
func (h *MessageHandler) messageRecord(full model.MessageFullID, msg *tg.Message) *repository.Message {
	record := &repository.Message{
		ID:            full,
		Date:          int32(msg.Date),
		IsChannelPost: msg.Post,
	}
	if msg.Out && h.env.SelfID.IsValid() {
		record.SenderUserID = h.env.SelfID
	} else if from, ok := msg.GetFromID(); ok {
		sender := model.DialogIDFromPeer(from)
		if sender.Type() == model.DialogTypeUser {
			record.SenderUserID = sender.UserID()
		} else if sender.IsValid() {
			record.SenderDialogID = sender
		}
	} else if full.DialogID.Type() == model.DialogTypeUser {
		record.SenderUserID = full.DialogID.UserID()
	}
	record.AuthorSignature, _ = msg.GetPostAuthor()

	if fwd, ok := msg.GetFwdFrom(); ok && fwd.Date > 0 {
		if o, err := h.env.Origins.ResolveOrigin(fwd); err == nil {
			record.ForwardOrigin = o
			record.ForwardDate = int32(fwd.Date)
		} else {
			h.log.Debug("Skip forward origin", zap.Stringer("message", full), zap.Error(err))
		}
	}

	entities, _ := msg.GetEntities()
	caption, err := text.Fix(msg.Message, text.EntitiesFromTG(entities))
	if err != nil {
		h.log.Debug("Drop message entities", zap.Stringer("message", full), zap.Error(err))
		cleaned, _ := text.CleanInputString(msg.Message)
		caption = model.FormattedText{Text: cleaned}
	}
	media, _ := msg.GetMedia()
	c, err := h.env.Contents.FromMedia(caption, media, full.DialogID, record.Date, false)
	if err != nil {
		h.log.Debug("Unsupported message content", zap.Stringer("message", full), zap.Error(err))
		c = content.Unsupported{}
	}
	record.Content = c
	return record
}

// forwardedInfo describes a known message as if it were forwarded to the
// current user.
func (h *MessageHandler) forwardedInfo(id model.MessageFullID) reply.ForwardedInfo {
	if !id.MessageID.IsServer() {
		return reply.ForwardedInfo{}
	}
	ctx := context.Background()
	msg, err := h.repo.GetMessage(ctx, id)
	if err != nil {
		return reply.ForwardedInfo{}
	}
	if deleted, err := h.repo.IsDeleted(ctx, id); err != nil || deleted {
		return reply.ForwardedInfo{}
	}

	info := reply.ForwardedInfo{OriginDate: msg.Date}
	switch {
	case !msg.ForwardOrigin.IsEmpty():
		info.Origin = msg.ForwardOrigin
		info.OriginDate = msg.ForwardDate
	case msg.IsChannelPost:
		info.Origin = origin.Channel(id.DialogID, id.MessageID, msg.AuthorSignature)
	case msg.SenderUserID.IsValid():
		info.Origin = origin.User(msg.SenderUserID)
	case msg.SenderDialogID.IsValid():
		info.Origin = origin.Chat(msg.SenderDialogID, msg.AuthorSignature)
	}
	if msg.Content != nil {
		info.Content = h.env.Contents.Duplicate(msg.Content, model.DialogIDFromUser(h.env.SelfID), content.DupForward)
	}
	return info
}

// threadOf returns the thread the message was sent to.
func threadOf(h *tg.MessageReplyHeader, info reply.Info) model.MessageID {
	if top, ok := h.GetReplyToTopID(); ok {
		return model.MessageIDFromServer(model.ServerMessageID(top))
	}
	return info.SameChatReplyToMessageID(true)
}

func serverIDs(ids []int) []model.MessageID {
	out := make([]model.MessageID, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.MessageIDFromServer(model.ServerMessageID(id)))
	}
	return out
}
