package model

import (
	"fmt"
	"math"

	"github.com/gotd/td/tg"
)

const (
	maxUserID        = 1<<40 - 1
	maxChatID        = 999999999999
	maxChannelID     = 1000000000000 - 1<<31
	zeroChannelID    = -1000000000000
	zeroSecretChatID = -2000000000000
)

type UserID int64

func (id UserID) IsValid() bool { return id > 0 && id <= maxUserID }

type ChatID int64

func (id ChatID) IsValid() bool { return id > 0 && id <= maxChatID }

type ChannelID int64

func (id ChannelID) IsValid() bool { return id > 0 && id <= maxChannelID }

type SecretChatID int32

func (id SecretChatID) IsValid() bool { return id != 0 }

type DialogType uint8

const (
	DialogTypeNone DialogType = iota
	DialogTypeUser
	DialogTypeChat
	DialogTypeChannel
	DialogTypeSecretChat
)

func (t DialogType) String() string {
	switch t {
	case DialogTypeUser:
		return "user"
	case DialogTypeChat:
		return "chat"
	case DialogTypeChannel:
		return "channel"
	case DialogTypeSecretChat:
		return "secret chat"
	default:
		return "none"
	}
}

// DialogID identifies a chat of any type in a single int64 space.
type DialogID int64

func DialogIDFromUser(id UserID) DialogID { return DialogID(id) }

func DialogIDFromChat(id ChatID) DialogID { return DialogID(-id) }

func DialogIDFromChannel(id ChannelID) DialogID { return DialogID(zeroChannelID - int64(id)) }

func DialogIDFromSecretChat(id SecretChatID) DialogID {
	return DialogID(zeroSecretChatID + int64(id))
}

// DialogIDFromPeer returns zero for nil or unknown peers.
func DialogIDFromPeer(p tg.PeerClass) DialogID {
	switch p := p.(type) {
	case *tg.PeerUser:
		return DialogIDFromUser(UserID(p.UserID))
	case *tg.PeerChat:
		return DialogIDFromChat(ChatID(p.ChatID))
	case *tg.PeerChannel:
		return DialogIDFromChannel(ChannelID(p.ChannelID))
	default:
		return 0
	}
}

func (d DialogID) Type() DialogType {
	switch {
	case d < 0:
		if d >= -maxChatID {
			return DialogTypeChat
		}
		if d >= zeroChannelID-maxChannelID && d != zeroChannelID {
			return DialogTypeChannel
		}
		if d >= zeroSecretChatID+math.MinInt32 && d <= zeroSecretChatID+math.MaxInt32 && d != zeroSecretChatID {
			return DialogTypeSecretChat
		}
	case d > 0 && d <= maxUserID:
		return DialogTypeUser
	}
	return DialogTypeNone
}

func (d DialogID) IsValid() bool {
	switch d.Type() {
	case DialogTypeUser:
		return d.UserID().IsValid()
	case DialogTypeChat:
		return d.ChatID().IsValid()
	case DialogTypeChannel:
		return d.ChannelID().IsValid()
	case DialogTypeSecretChat:
		return d.SecretChatID().IsValid()
	default:
		return false
	}
}

func (d DialogID) UserID() UserID {
	if d.Type() != DialogTypeUser {
		return 0
	}
	return UserID(d)
}

func (d DialogID) ChatID() ChatID {
	if d.Type() != DialogTypeChat {
		return 0
	}
	return ChatID(-d)
}

func (d DialogID) ChannelID() ChannelID {
	if d.Type() != DialogTypeChannel {
		return 0
	}
	return ChannelID(zeroChannelID - int64(d))
}

func (d DialogID) SecretChatID() SecretChatID {
	if d.Type() != DialogTypeSecretChat {
		return 0
	}
	return SecretChatID(int64(d) - zeroSecretChatID)
}

func (d DialogID) String() string {
	if d == 0 {
		return "chat 0"
	}
	return fmt.Sprintf("%s %d", d.Type(), int64(d))
}
