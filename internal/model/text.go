package model

import "slices"

type EntityType uint8

const (
	EntityMention EntityType = iota + 1
	EntityHashtag
	EntityCashtag
	EntityBotCommand
	EntityURL
	EntityEmail
	EntityPhoneNumber
	EntityBankCardNumber
	EntityBold
	EntityItalic
	EntityUnderline
	EntityStrikethrough
	EntitySpoiler
	EntityCode
	EntityPre
	EntityPreCode
	EntityTextURL
	EntityMentionName
	EntityCustomEmoji
	EntityBlockquote
)

var entityTypeNames = [...]string{
	EntityMention:        "mention",
	EntityHashtag:        "hashtag",
	EntityCashtag:        "cashtag",
	EntityBotCommand:     "bot command",
	EntityURL:            "url",
	EntityEmail:          "email",
	EntityPhoneNumber:    "phone number",
	EntityBankCardNumber: "bank card number",
	EntityBold:           "bold",
	EntityItalic:         "italic",
	EntityUnderline:      "underline",
	EntityStrikethrough:  "strikethrough",
	EntitySpoiler:        "spoiler",
	EntityCode:           "code",
	EntityPre:            "pre",
	EntityPreCode:        "pre code",
	EntityTextURL:        "text url",
	EntityMentionName:    "mention name",
	EntityCustomEmoji:    "custom emoji",
	EntityBlockquote:     "blockquote",
}

func (t EntityType) String() string {
	if int(t) < len(entityTypeNames) && entityTypeNames[t] != "" {
		return entityTypeNames[t]
	}
	return "unknown"
}

// MessageEntity marks a span of text. Offset and Length are in UTF-16 code
// units. Argument holds the url of text urls and the language of pre code.
type MessageEntity struct {
	Type          EntityType
	Offset        int32
	Length        int32
	Argument      string
	UserID        UserID
	CustomEmojiID int64
}

func (e MessageEntity) End() int32 { return e.Offset + e.Length }

type FormattedText struct {
	Text     string
	Entities []MessageEntity
}

func (t FormattedText) IsEmpty() bool { return t.Text == "" }

// Length returns the text length in UTF-16 code units.
func (t FormattedText) Length() int { return UTF16Length(t.Text) }

func (t FormattedText) Equal(o FormattedText) bool {
	return t.Text == o.Text && slices.Equal(t.Entities, o.Entities)
}

func (t FormattedText) Clone() FormattedText {
	return FormattedText{Text: t.Text, Entities: slices.Clone(t.Entities)}
}

func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
