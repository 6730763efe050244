package reply

import "github.com/NguyenHuy1812/telegram-reply-info/internal/model"

// NeedChangedWarning reports whether replacing old with updated for the same
// message is unexpected. Differences explained by server-side truncation,
// deletion of the replied message or sending of a local message are
// tolerated.
//
// oldTopThreadMessageID is the thread of the message before the update;
// isYetUnsent tells whether old was built for a message still being sent.
// isReplyToDeleted reports whether the message a value replies to is known
// to be deleted.
func NeedChangedWarning(env Env, old, updated Info, oldTopThreadMessageID model.MessageID, isYetUnsent bool, isReplyToDeleted func(Info) bool) bool {
	if isReplyToDeleted == nil {
		isReplyToDeleted = func(Info) bool { return false }
	}
	if old.originDate != updated.originDate && old.originDate != 0 && updated.originDate != 0 {
		return true
	}
	if !old.origin.IsEmpty() && !updated.origin.IsEmpty() && !old.origin.EqualIgnoringSignature(updated.origin) {
		return true
	}
	if old.quotePosition != updated.quotePosition &&
		int(max(old.quotePosition, updated.quotePosition)) < min(old.quote.Length(), updated.quote.Length()) {
		// quote position can't change
		return true
	}
	if old.isQuoteManual != updated.isQuoteManual {
		return true
	}
	if !old.quote.Equal(updated.quote) {
		if old.isQuoteManual {
			return true
		}
		// automatic quotes may be truncated differently
		threshold := env.quoteLengthMax() - env.quoteDriftMargin()
		if int64(max(old.quote.Length(), updated.quote.Length())) < threshold {
			return true
		}
	}
	if old.dialogID != updated.dialogID && old.dialogID != 0 && updated.dialogID != 0 {
		return true
	}
	if old.messageID == updated.messageID && old.dialogID == updated.dialogID {
		if old.messageID != 0 {
			if old.originDate != updated.originDate {
				return true
			}
			if !old.origin.EqualIgnoringSignature(updated.origin) {
				return true
			}
		}
		return false
	}

	if isYetUnsent && updated.messageID == 0 && isReplyToDeleted(old) {
		return false
	}
	if isYetUnsent && old.messageID == 0 && isReplyToDeleted(updated) {
		return false
	}
	if old.messageID.IsValidScheduled() && old.messageID.IsScheduledServer() &&
		updated.messageID.IsValidScheduled() && updated.messageID.IsScheduledServer() &&
		old.messageID.ScheduledServerID() == updated.messageID.ScheduledServerID() {
		// the message was rescheduled
		return false
	}
	if isYetUnsent && oldTopThreadMessageID == updated.messageID && updated.dialogID == 0 {
		// the message was sent to a thread without a quote
		return false
	}
	return true
}
