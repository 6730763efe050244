// Package text validates and normalizes formatted message text.
package text

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

var (
	ErrInvalidUTF8       = errors.New("text is not valid UTF-8")
	ErrControlCharacters = errors.New("text contains control characters")
)

var (
	controlCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0D\x0E-\x1F\x7F]`)

	directionReplacer = strings.NewReplacer(
		"\u202A", "", "\u202B", "",
		"\u202C", "", "\u202D", "", "\u202E", "",
	)
)

// CleanInputString strips control and text direction characters. It fails
// only on invalid UTF-8.
func CleanInputString(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	s = controlCharsRegex.ReplaceAllString(s, "")
	return directionReplacer.Replace(s), true
}

// Fix validates text and brings entities into canonical form: spans are
// clipped to the text, empty or argument-less spans are dropped and the
// rest is ordered by offset, outer spans first.
func Fix(s string, entities []model.MessageEntity) (model.FormattedText, error) {
	if !utf8.ValidString(s) {
		return model.FormattedText{}, ErrInvalidUTF8
	}
	if controlCharsRegex.MatchString(s) || directionReplacer.Replace(s) != s {
		return model.FormattedText{}, ErrControlCharacters
	}

	n := int32(model.UTF16Length(s))
	var fixed []model.MessageEntity
	for _, e := range entities {
		if e.Length <= 0 || e.Offset < 0 || e.Offset >= n {
			continue
		}
		if e.End() > n {
			e.Length = n - e.Offset
		}
		switch e.Type {
		case model.EntityTextURL:
			if e.Argument == "" {
				continue
			}
		case model.EntityMentionName:
			if !e.UserID.IsValid() {
				continue
			}
		case model.EntityCustomEmoji:
			if e.CustomEmojiID == 0 {
				continue
			}
		}
		fixed = append(fixed, e)
	}
	slices.SortStableFunc(fixed, func(a, b model.MessageEntity) int {
		if a.Offset != b.Offset {
			return cmp.Compare(a.Offset, b.Offset)
		}
		return cmp.Compare(b.Length, a.Length)
	})

	return model.FormattedText{Text: s, Entities: fixed}, nil
}

// IsAllowedQuoteEntity reports whether the entity type survives in quotes.
func IsAllowedQuoteEntity(t model.EntityType) bool {
	switch t {
	case model.EntityBold,
		model.EntityItalic,
		model.EntityUnderline,
		model.EntityStrikethrough,
		model.EntitySpoiler,
		model.EntityCustomEmoji:
		return true
	default:
		return false
	}
}

func RemoveUnallowedQuoteEntities(t model.FormattedText) model.FormattedText {
	out := model.FormattedText{Text: t.Text}
	for _, e := range t.Entities {
		if IsAllowedQuoteEntity(e.Type) {
			out.Entities = append(out.Entities, e)
		}
	}
	return out
}

// Truncate cuts the text to at most n UTF-16 code units without splitting
// a surrogate pair. Entities are clipped to the remaining text.
func Truncate(t model.FormattedText, n int) model.FormattedText {
	if n < 0 {
		n = 0
	}
	if t.Length() <= n {
		return t.Clone()
	}

	units, cut := 0, 0
	for i, r := range t.Text {
		w := 1
		if r >= 0x10000 {
			w = 2
		}
		if units+w > n {
			cut = i
			break
		}
		units += w
	}
	out := model.FormattedText{Text: t.Text[:cut]}

	limit := int32(units)
	for _, e := range t.Entities {
		if e.Offset >= limit {
			continue
		}
		if e.End() > limit {
			e.Length = limit - e.Offset
		}
		if e.Length > 0 {
			out.Entities = append(out.Entities, e)
		}
	}
	return out
}
