package model

import (
	"fmt"
	"math"
)

const (
	serverIDShift    = 20
	typeMask         = 1<<3 - 1
	fullTypeMask     = 1<<serverIDShift - 1
	scheduledMask    = 4
	typeYetUnsent    = 1
	typeLocal        = 2
	scheduledIDShift = 3
	scheduledIDLimit = 1 << 18
	scheduledDateMin = 1 << 30
)

type ServerMessageID int32

func (id ServerMessageID) IsValid() bool { return id > 0 }

// ScheduledServerMessageID is the server id of a scheduled message. It is
// only unique together with the send date.
type ScheduledServerMessageID int32

func (id ScheduledServerMessageID) IsValid() bool { return id > 0 && id < scheduledIDLimit }

// MessageID is the client-side message id. Server ids occupy the bits above
// 20, the low 3 bits carry the id type.
type MessageID int64

// MaxMessageID is the largest ordinary message id.
const MaxMessageID = MessageID(int64(math.MaxInt32) << serverIDShift)

func MessageIDFromServer(id ServerMessageID) MessageID {
	return MessageID(int64(id) << serverIDShift)
}

// ScheduledMessageID returns zero when the pair does not form a valid
// scheduled id.
func ScheduledMessageID(id ScheduledServerMessageID, sendDate int32) MessageID {
	if sendDate <= scheduledDateMin || !id.IsValid() {
		return 0
	}
	return MessageID(int64(sendDate-scheduledDateMin)<<(serverIDShift+1) |
		int64(id)<<scheduledIDShift | scheduledMask)
}

// YetUnsentMessageID returns the id of the n-th local outgoing message sent
// after the server message last.
func YetUnsentMessageID(last ServerMessageID, n int32) MessageID {
	return MessageID(int64(last)<<serverIDShift | int64(n)<<scheduledIDShift | typeYetUnsent)
}

func (m MessageID) IsValid() bool {
	if m <= 0 || m > MaxMessageID {
		return false
	}
	if m&fullTypeMask == 0 {
		return true
	}
	t := m & typeMask
	return t == typeYetUnsent || t == typeLocal
}

func (m MessageID) IsValidScheduled() bool {
	if m <= 0 || m > 1<<51 {
		return false
	}
	t := m & typeMask
	return t == scheduledMask || t == scheduledMask|typeYetUnsent || t == scheduledMask|typeLocal
}

func (m MessageID) IsScheduled() bool { return m&scheduledMask != 0 }

func (m MessageID) IsScheduledServer() bool { return m.IsValidScheduled() && m&3 == 0 }

func (m MessageID) ScheduledServerID() ScheduledServerMessageID {
	if !m.IsValidScheduled() {
		return 0
	}
	return ScheduledServerMessageID((m >> scheduledIDShift) & (scheduledIDLimit - 1))
}

func (m MessageID) IsServer() bool { return m.IsValid() && m&fullTypeMask == 0 }

func (m MessageID) ServerID() ServerMessageID {
	if !m.IsServer() {
		return 0
	}
	return ServerMessageID(m >> serverIDShift)
}

func (m MessageID) IsYetUnsent() bool { return m.IsValid() && m&typeMask == typeYetUnsent }

func (m MessageID) String() string {
	switch {
	case m == 0:
		return "message 0"
	case m.IsScheduled() && m.IsValidScheduled():
		return fmt.Sprintf("scheduled message %d (%d)", m.ScheduledServerID(), int64(m))
	case m.IsServer():
		return fmt.Sprintf("message %d", m.ServerID())
	case m.IsYetUnsent():
		return fmt.Sprintf("yet unsent message %d", int64(m))
	default:
		return fmt.Sprintf("local message %d", int64(m))
	}
}

// MessageFullID identifies a message across dialogs.
type MessageFullID struct {
	DialogID  DialogID
	MessageID MessageID
}

func (f MessageFullID) String() string {
	return fmt.Sprintf("%s in %s", f.MessageID, f.DialogID)
}
