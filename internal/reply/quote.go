package reply

import (
	"github.com/go-faster/errors"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/text"
)

type rawQuote struct {
	text     string
	entities []model.MessageEntity
	offset   int
	// maxLength bounds automatic quotes, in UTF-16 code units. Zero keeps
	// the text whole.
	maxLength int64
	manual    bool
}

// normalizeQuote never fails; malformed input is reported and as much of
// the text as can be cleaned is kept without entities.
func normalizeQuote(q rawQuote) (quote model.FormattedText, position int32, err error) {
	quote, err = text.Fix(q.text, q.entities)
	if err != nil {
		err = errors.Wrapf(ErrMalformedQuote, "%v", err)
		cleaned, ok := text.CleanInputString(q.text)
		if !ok {
			cleaned = ""
		}
		quote = model.FormattedText{Text: cleaned}
	}
	quote = text.RemoveUnallowedQuoteEntities(quote)
	if !q.manual && q.maxLength > 0 {
		quote = text.Truncate(quote, int(q.maxLength))
	}
	return quote, int32(max(0, q.offset)), err
}
