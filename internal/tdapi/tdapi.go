// Package tdapi converts reply objects to the TDLib client types.
package tdapi

import (
	"github.com/zelenin/go-tdlib/client"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/reply"
)

func ReplyTo(obj *reply.ReplyToMessage) *client.MessageReplyToMessage {
	if obj == nil {
		return nil
	}
	out := &client.MessageReplyToMessage{
		ChatId:         obj.ChatID,
		MessageId:      obj.MessageID,
		OriginSendDate: obj.OriginSendDate,
	}
	if obj.Quote != nil {
		out.Quote = &client.TextQuote{
			Text:     FormattedText(obj.Quote.Text),
			Position: obj.Quote.Position,
			IsManual: obj.Quote.IsManual,
		}
	}
	if obj.Origin != nil {
		out.Origin = Origin(*obj.Origin)
	}
	if obj.Content != nil {
		out.Content = Content(obj.Content)
	}
	return out
}

func FormattedText(t model.FormattedText) *client.FormattedText {
	out := &client.FormattedText{Text: t.Text, Entities: []*client.TextEntity{}}
	for _, e := range t.Entities {
		typ := entityType(e)
		if typ == nil {
			continue
		}
		out.Entities = append(out.Entities, &client.TextEntity{
			Offset: e.Offset,
			Length: e.Length,
			Type:   typ,
		})
	}
	return out
}

func entityType(e model.MessageEntity) client.TextEntityType {
	switch e.Type {
	case model.EntityMention:
		return &client.TextEntityTypeMention{}
	case model.EntityHashtag:
		return &client.TextEntityTypeHashtag{}
	case model.EntityCashtag:
		return &client.TextEntityTypeCashtag{}
	case model.EntityBotCommand:
		return &client.TextEntityTypeBotCommand{}
	case model.EntityURL:
		return &client.TextEntityTypeUrl{}
	case model.EntityEmail:
		return &client.TextEntityTypeEmailAddress{}
	case model.EntityPhoneNumber:
		return &client.TextEntityTypePhoneNumber{}
	case model.EntityBankCardNumber:
		return &client.TextEntityTypeBankCardNumber{}
	case model.EntityBold:
		return &client.TextEntityTypeBold{}
	case model.EntityItalic:
		return &client.TextEntityTypeItalic{}
	case model.EntityUnderline:
		return &client.TextEntityTypeUnderline{}
	case model.EntityStrikethrough:
		return &client.TextEntityTypeStrikethrough{}
	case model.EntitySpoiler:
		return &client.TextEntityTypeSpoiler{}
	case model.EntityCode:
		return &client.TextEntityTypeCode{}
	case model.EntityPre:
		return &client.TextEntityTypePre{}
	case model.EntityPreCode:
		return &client.TextEntityTypePreCode{Language: e.Argument}
	case model.EntityTextURL:
		return &client.TextEntityTypeTextUrl{Url: e.Argument}
	case model.EntityMentionName:
		return &client.TextEntityTypeMentionName{UserId: int64(e.UserID)}
	case model.EntityCustomEmoji:
		return &client.TextEntityTypeCustomEmoji{CustomEmojiId: client.JsonInt64(e.CustomEmojiID)}
	case model.EntityBlockquote:
		return &client.TextEntityTypeBlockQuote{}
	default:
		return nil
	}
}

// Origin returns nil for the empty origin.
func Origin(o origin.Origin) client.MessageOrigin {
	switch o.Kind() {
	case origin.KindUser:
		return &client.MessageOriginUser{SenderUserId: int64(o.SenderUserID)}
	case origin.KindHiddenUser:
		return &client.MessageOriginHiddenUser{SenderName: o.SenderName}
	case origin.KindChat:
		return &client.MessageOriginChat{
			SenderChatId:    int64(o.SenderDialogID),
			AuthorSignature: o.AuthorSignature,
		}
	case origin.KindChannel:
		return &client.MessageOriginChannel{
			ChatId:          int64(o.SenderDialogID),
			MessageId:       int64(o.MessageID),
			AuthorSignature: o.AuthorSignature,
		}
	default:
		return nil
	}
}

// Content converts a snapshot. File contents are not part of snapshots, so
// only the metadata fields are filled.
func Content(c content.Content) client.MessageContent {
	switch c := c.(type) {
	case content.Text:
		out := &client.MessageText{Text: FormattedText(c.Text)}
		switch {
		case c.PreviewOptions != nil:
			out.LinkPreviewOptions = &client.LinkPreviewOptions{
				Url:             c.PreviewOptions.URL,
				IsDisabled:      c.PreviewOptions.IsDisabled,
				ForceSmallMedia: c.PreviewOptions.ForceSmallMedia,
				ForceLargeMedia: c.PreviewOptions.ForceLargeMedia,
				ShowAboveText:   c.PreviewOptions.ShowAboveText,
			}
		case c.WebPage != nil:
			out.LinkPreviewOptions = &client.LinkPreviewOptions{Url: c.WebPage.URL}
		}
		return out
	case content.Photo:
		return &client.MessagePhoto{Photo: &client.Photo{}, Caption: FormattedText(c.Caption)}
	case content.Document:
		return &client.MessageDocument{
			Document: &client.Document{
				FileName: c.FileName,
				MimeType: c.MimeType,
				Document: file(c.Size),
			},
			Caption: FormattedText(c.Caption),
		}
	case content.Video:
		return &client.MessageVideo{
			Video: &client.Video{
				Duration: c.Duration,
				Width:    c.Width,
				Height:   c.Height,
				FileName: c.FileName,
				MimeType: c.MimeType,
				Video:    file(c.Size),
			},
			Caption: FormattedText(c.Caption),
		}
	case content.Animation:
		return &client.MessageAnimation{
			Animation: &client.Animation{
				Duration:  c.Duration,
				Width:     c.Width,
				Height:    c.Height,
				FileName:  c.FileName,
				MimeType:  c.MimeType,
				Animation: file(c.Size),
			},
			Caption: FormattedText(c.Caption),
		}
	case content.Audio:
		return &client.MessageAudio{
			Audio: &client.Audio{
				Duration:  c.Duration,
				Title:     c.Title,
				Performer: c.Performer,
				FileName:  c.FileName,
				MimeType:  c.MimeType,
				Audio:     file(c.Size),
			},
			Caption: FormattedText(c.Caption),
		}
	case content.VoiceNote:
		return &client.MessageVoiceNote{
			VoiceNote: &client.VoiceNote{
				Duration: c.Duration,
				MimeType: c.MimeType,
				Voice:    file(c.Size),
			},
			Caption: FormattedText(c.Caption),
		}
	case content.VideoNote:
		return &client.MessageVideoNote{
			VideoNote: &client.VideoNote{
				Duration: c.Duration,
				Length:   c.Length,
				Video:    file(c.Size),
			},
		}
	case content.Sticker:
		return &client.MessageSticker{
			Sticker: &client.Sticker{
				Width:   c.Width,
				Height:  c.Height,
				Emoji:   c.Emoji,
				Sticker: file(c.Size),
			},
		}
	case content.Contact:
		return &client.MessageContact{
			Contact: &client.Contact{
				PhoneNumber: c.PhoneNumber,
				FirstName:   c.FirstName,
				LastName:    c.LastName,
				Vcard:       c.Vcard,
				UserId:      int64(c.UserID),
			},
		}
	case content.Location:
		return &client.MessageLocation{Location: location(c), LivePeriod: c.LivePeriod}
	case content.Venue:
		return &client.MessageVenue{
			Venue: &client.Venue{
				Location: location(c.Location),
				Title:    c.Title,
				Address:  c.Address,
				Provider: c.Provider,
				Id:       c.ID,
				Type:     c.VenueType,
			},
		}
	case content.Poll:
		return &client.MessagePoll{Poll: &client.Poll{Id: client.JsonInt64(c.PollID), IsClosed: c.Closed}}
	case content.Dice:
		return &client.MessageDice{Emoji: c.Emoji, Value: c.Value}
	case content.Game:
		return &client.MessageGame{
			Game: &client.Game{Id: client.JsonInt64(c.GameID), ShortName: c.ShortName, Title: c.Title},
		}
	case content.Story:
		return &client.MessageStory{
			StorySenderChatId: int64(c.SenderDialogID),
			StoryId:           c.StoryID,
			ViaMention:        c.ViaMention,
		}
	case content.ExpiredPhoto:
		return &client.MessageExpiredPhoto{}
	case content.ExpiredVideo:
		return &client.MessageExpiredVideo{}
	default:
		return &client.MessageUnsupported{}
	}
}

func location(l content.Location) *client.Location {
	return &client.Location{Latitude: l.Latitude, Longitude: l.Longitude}
}

func file(size int64) *client.File {
	return &client.File{Size: size, ExpectedSize: size}
}
