package text

import (
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

// FromTG converts MTProto entities. Unknown entity kinds and input-only
// mentions are skipped.
func FromTG(s string, entities []tg.MessageEntityClass) model.FormattedText {
	return model.FormattedText{Text: s, Entities: EntitiesFromTG(entities)}
}

func EntitiesFromTG(entities []tg.MessageEntityClass) []model.MessageEntity {
	if len(entities) == 0 {
		return nil
	}

	out := make([]model.MessageEntity, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		e := model.MessageEntity{
			Offset: int32(entity.GetOffset()),
			Length: int32(entity.GetLength()),
		}
		switch v := entity.(type) {
		case *tg.MessageEntityMention:
			e.Type = model.EntityMention
		case *tg.MessageEntityHashtag:
			e.Type = model.EntityHashtag
		case *tg.MessageEntityCashtag:
			e.Type = model.EntityCashtag
		case *tg.MessageEntityBotCommand:
			e.Type = model.EntityBotCommand
		case *tg.MessageEntityURL:
			e.Type = model.EntityURL
		case *tg.MessageEntityEmail:
			e.Type = model.EntityEmail
		case *tg.MessageEntityPhone:
			e.Type = model.EntityPhoneNumber
		case *tg.MessageEntityBankCard:
			e.Type = model.EntityBankCardNumber
		case *tg.MessageEntityBold:
			e.Type = model.EntityBold
		case *tg.MessageEntityItalic:
			e.Type = model.EntityItalic
		case *tg.MessageEntityUnderline:
			e.Type = model.EntityUnderline
		case *tg.MessageEntityStrike:
			e.Type = model.EntityStrikethrough
		case *tg.MessageEntitySpoiler:
			e.Type = model.EntitySpoiler
		case *tg.MessageEntityCode:
			e.Type = model.EntityCode
		case *tg.MessageEntityPre:
			e.Type = model.EntityPre
			if v.Language != "" {
				e.Type = model.EntityPreCode
				e.Argument = v.Language
			}
		case *tg.MessageEntityTextURL:
			e.Type = model.EntityTextURL
			e.Argument = v.URL
		case *tg.MessageEntityMentionName:
			e.Type = model.EntityMentionName
			e.UserID = model.UserID(v.UserID)
			if !e.UserID.IsValid() {
				continue
			}
		case *tg.MessageEntityCustomEmoji:
			e.Type = model.EntityCustomEmoji
			e.CustomEmojiID = v.DocumentID
		case *tg.MessageEntityBlockquote:
			e.Type = model.EntityBlockquote
		default:
			continue
		}
		out = append(out, e)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
