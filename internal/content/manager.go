package content

import (
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

type DupType uint8

const (
	// DupCopy produces an exact deep copy.
	DupCopy DupType = iota
	// DupForward produces the content as seen by the receiver of a forward.
	DupForward
)

// Fields that may differ without the content being visibly changed.
var metadataOnly = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreFields(Text{}, "WebPage"),
	cmpopts.IgnoreFields(Document{}, "Size"),
	cmpopts.IgnoreFields(Video{}, "Size"),
	cmpopts.IgnoreFields(Animation{}, "Size"),
	cmpopts.IgnoreFields(Audio{}, "Size"),
	cmpopts.IgnoreFields(VoiceNote{}, "Size"),
	cmpopts.IgnoreFields(VideoNote{}, "Size"),
	cmpopts.IgnoreFields(Sticker{}, "Size"),
}

// Manager tracks how many registered values reference each file.
type Manager struct {
	mu   sync.Mutex
	refs map[FileID]int
}

func NewManager() *Manager {
	return &Manager{refs: make(map[FileID]int)}
}

func (m *Manager) FromMedia(caption model.FormattedText, media tg.MessageMediaClass, owner model.DialogID, date int32, isCopy bool) (Content, error) {
	return FromMedia(caption, media, owner, date, isCopy)
}

func (m *Manager) IsSupportedReply(t Type) bool { return IsSupportedReply(t) }

func (m *Manager) Duplicate(c Content, owner model.DialogID, dup DupType) Content {
	switch c := c.(type) {
	case nil:
		return nil
	case Text:
		c.Text = c.Text.Clone()
		if c.WebPage != nil {
			page := *c.WebPage
			c.WebPage = &page
		}
		if c.PreviewOptions != nil {
			opts := *c.PreviewOptions
			c.PreviewOptions = &opts
		}
		return c
	case Story:
		if dup == DupForward {
			c.ViaMention = false
		}
		return c
	default:
		if t, ok := m.Text(c); ok {
			return m.WithText(c, t.Clone())
		}
		return c
	}
}

// Compare reports whether updated is a visible change of old and, if it
// isn't, whether it still carries metadata worth storing.
func (m *Manager) Compare(old, updated Content) (needUpdate, changed bool) {
	if old == nil || updated == nil {
		return false, (old == nil) != (updated == nil)
	}
	if old.Type() != updated.Type() {
		return false, true
	}
	if !cmp.Equal(old, updated, metadataOnly...) {
		return false, true
	}
	return !cmp.Equal(old, updated, cmpopts.EquateEmpty()), false
}

// Text returns the text of text content or the caption of media content.
func (m *Manager) Text(c Content) (model.FormattedText, bool) {
	switch c := c.(type) {
	case Text:
		return c.Text, true
	case Photo:
		return c.Caption, true
	case Document:
		return c.Caption, true
	case Video:
		return c.Caption, true
	case Animation:
		return c.Caption, true
	case Audio:
		return c.Caption, true
	case VoiceNote:
		return c.Caption, true
	default:
		return model.FormattedText{}, false
	}
}

// WithText returns c with its text or caption replaced. Content without
// text is returned as is.
func (m *Manager) WithText(c Content, t model.FormattedText) Content {
	switch c := c.(type) {
	case Text:
		c.Text = t
		return c
	case Photo:
		c.Caption = t
		return c
	case Document:
		c.Caption = t
		return c
	case Video:
		c.Caption = t
		return c
	case Animation:
		c.Caption = t
		return c
	case Audio:
		c.Caption = t
		return c
	case VoiceNote:
		c.Caption = t
		return c
	default:
		return c
	}
}

func (m *Manager) FileIDs(c Content) []FileID {
	var id FileID
	switch c := c.(type) {
	case Photo:
		id = c.PhotoID
	case Document:
		id = c.FileID
	case Video:
		id = c.FileID
	case Animation:
		id = c.FileID
	case Audio:
		id = c.FileID
	case VoiceNote:
		id = c.FileID
	case VideoNote:
		id = c.FileID
	case Sticker:
		id = c.FileID
	}
	if id == 0 {
		return nil
	}
	return []FileID{id}
}

// MinUserIDs returns users that may be known only from this content.
func (m *Manager) MinUserIDs(c Content) []model.UserID {
	var ids []model.UserID
	if c, ok := c.(Contact); ok && c.UserID.IsValid() {
		ids = append(ids, c.UserID)
	}
	if t, ok := m.Text(c); ok {
		for _, e := range t.Entities {
			if e.Type == model.EntityMentionName && e.UserID.IsValid() {
				ids = append(ids, e.UserID)
			}
		}
	}
	return ids
}

func (m *Manager) MinChannelIDs(c Content) []model.ChannelID {
	if s, ok := c.(Story); ok && s.SenderDialogID.Type() == model.DialogTypeChannel {
		return []model.ChannelID{s.SenderDialogID.ChannelID()}
	}
	return nil
}

// AddDependencies adds what the content refers to. Bots can't load stories,
// so their story senders are skipped.
func (m *Manager) AddDependencies(d *deps.Dependencies, c Content, isBot bool) {
	switch c := c.(type) {
	case Contact:
		d.AddUser(c.UserID)
	case Story:
		if !isBot {
			d.AddDialogAndDependencies(c.SenderDialogID)
		}
	}
	if t, ok := m.Text(c); ok {
		d.AddFormattedText(t)
	}
}

func (m *Manager) Register(c Content) {
	ids := m.FileIDs(c)
	if len(ids) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.refs[id]++
	}
}

func (m *Manager) Unregister(c Content) {
	ids := m.FileIDs(c)
	if len(ids) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if m.refs[id] <= 1 {
			delete(m.refs, id)
			continue
		}
		m.refs[id]--
	}
}

// References returns the number of registered values referencing the file.
func (m *Manager) References(id FileID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs[id]
}

// NeedReget reports whether the content was produced by an older client that
// did not understand it.
func (m *Manager) NeedReget(c Content) bool {
	_, ok := c.(Unsupported)
	return ok
}
