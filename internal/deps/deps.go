// Package deps collects the users, chats and channels a value refers to, so
// that they can be fetched before the value is shown.
package deps

import (
	"cmp"
	"slices"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

type Dependencies struct {
	users       map[model.UserID]struct{}
	chats       map[model.ChatID]struct{}
	channels    map[model.ChannelID]struct{}
	secretChats map[model.SecretChatID]struct{}
	dialogs     map[model.DialogID]struct{}
}

func add[K comparable](m *map[K]struct{}, k K) {
	if *m == nil {
		*m = make(map[K]struct{})
	}
	(*m)[k] = struct{}{}
}

func sorted[K cmp.Ordered](m map[K]struct{}) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d *Dependencies) AddUser(id model.UserID) {
	if id.IsValid() {
		add(&d.users, id)
	}
}

func (d *Dependencies) AddChat(id model.ChatID) {
	if id.IsValid() {
		add(&d.chats, id)
	}
}

func (d *Dependencies) AddChannel(id model.ChannelID) {
	if id.IsValid() {
		add(&d.channels, id)
	}
}

func (d *Dependencies) AddSecretChat(id model.SecretChatID) {
	if id.IsValid() {
		add(&d.secretChats, id)
	}
}

// AddDialogDependencies adds the peer behind the dialog.
func (d *Dependencies) AddDialogDependencies(id model.DialogID) {
	switch id.Type() {
	case model.DialogTypeUser:
		d.AddUser(id.UserID())
	case model.DialogTypeChat:
		d.AddChat(id.ChatID())
	case model.DialogTypeChannel:
		d.AddChannel(id.ChannelID())
	case model.DialogTypeSecretChat:
		d.AddSecretChat(id.SecretChatID())
	}
}

// AddDialogAndDependencies adds the dialog itself and the peer behind it.
func (d *Dependencies) AddDialogAndDependencies(id model.DialogID) {
	if !id.IsValid() {
		return
	}
	add(&d.dialogs, id)
	d.AddDialogDependencies(id)
}

// AddFormattedText adds users mentioned by name.
func (d *Dependencies) AddFormattedText(t model.FormattedText) {
	for _, e := range t.Entities {
		if e.Type == model.EntityMentionName {
			d.AddUser(e.UserID)
		}
	}
}

func (d *Dependencies) UserIDs() []model.UserID { return sorted(d.users) }

func (d *Dependencies) ChatIDs() []model.ChatID { return sorted(d.chats) }

func (d *Dependencies) ChannelIDs() []model.ChannelID { return sorted(d.channels) }

func (d *Dependencies) SecretChatIDs() []model.SecretChatID { return sorted(d.secretChats) }

func (d *Dependencies) DialogIDs() []model.DialogID { return sorted(d.dialogs) }
