package content

import (
	"github.com/go-faster/errors"
	"github.com/gotd/td/tg"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

var ErrInvalidMedia = errors.New("invalid media")

// FromMedia builds a snapshot of MTProto media. Copies never carry live
// state: live locations become static and story mention marks are dropped.
// Media kinds without a snapshot type map to Unsupported.
func FromMedia(caption model.FormattedText, media tg.MessageMediaClass, owner model.DialogID, date int32, isCopy bool) (Content, error) {
	switch m := media.(type) {
	case nil, *tg.MessageMediaEmpty:
		return Text{Text: caption}, nil
	case *tg.MessageMediaPhoto:
		p, ok := m.GetPhoto()
		if !ok {
			return ExpiredPhoto{}, nil
		}
		photo, ok := p.(*tg.Photo)
		if !ok {
			return ExpiredPhoto{}, nil
		}
		return Photo{PhotoID: FileID(photo.ID), Caption: caption, HasSpoiler: m.Spoiler}, nil
	case *tg.MessageMediaDocument:
		d, ok := m.GetDocument()
		if !ok {
			return ExpiredVideo{}, nil
		}
		doc, ok := d.(*tg.Document)
		if !ok {
			return ExpiredVideo{}, nil
		}
		return fromDocument(doc, caption, m.Spoiler), nil
	case *tg.MessageMediaGeo:
		loc, err := location(m.Geo)
		if err != nil {
			return nil, err
		}
		return loc, nil
	case *tg.MessageMediaGeoLive:
		loc, err := location(m.Geo)
		if err != nil {
			return nil, err
		}
		if !isCopy {
			loc.LivePeriod = int32(m.Period)
		}
		return loc, nil
	case *tg.MessageMediaVenue:
		loc, err := location(m.Geo)
		if err != nil {
			return nil, err
		}
		return Venue{
			Location:  loc,
			Title:     m.Title,
			Address:   m.Address,
			Provider:  m.Provider,
			ID:        m.VenueID,
			VenueType: m.VenueType,
		}, nil
	case *tg.MessageMediaContact:
		c := Contact{
			PhoneNumber: m.PhoneNumber,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Vcard:       m.Vcard,
		}
		if id := model.UserID(m.UserID); id.IsValid() {
			c.UserID = id
		}
		return c, nil
	case *tg.MessageMediaPoll:
		return Poll{PollID: m.Poll.ID, Closed: m.Poll.Closed}, nil
	case *tg.MessageMediaDice:
		return Dice{Emoji: m.Emoticon, Value: int32(m.Value)}, nil
	case *tg.MessageMediaGame:
		return Game{GameID: m.Game.ID, ShortName: m.Game.ShortName, Title: m.Game.Title}, nil
	case *tg.MessageMediaWebPage:
		page := &WebPage{}
		if p, ok := m.Webpage.(*tg.WebPage); ok {
			page.URL = p.URL
			page.DisplayURL = p.DisplayURL
			page.SiteName = p.SiteName
			page.Title = p.Title
		}
		return Text{Text: caption, WebPage: page}, nil
	case *tg.MessageMediaStory:
		sender := model.DialogIDFromPeer(m.Peer)
		if !sender.IsValid() {
			return nil, errors.Wrapf(ErrInvalidMedia, "story %d of %v", m.ID, m.Peer)
		}
		return Story{SenderDialogID: sender, StoryID: int32(m.ID), ViaMention: m.ViaMention && !isCopy}, nil
	default:
		return Unsupported{}, nil
	}
}

func location(geo tg.GeoPointClass) (Location, error) {
	point, ok := geo.(*tg.GeoPoint)
	if !ok {
		return Location{}, errors.Wrap(ErrInvalidMedia, "empty geo point")
	}
	return Location{Latitude: point.Lat, Longitude: point.Long}, nil
}

func fromDocument(doc *tg.Document, caption model.FormattedText, spoiler bool) Content {
	var (
		fileName      string
		animated      bool
		width, height int32
		sticker       *tg.DocumentAttributeSticker
		video         *tg.DocumentAttributeVideo
		audio         *tg.DocumentAttributeAudio
	)
	for _, attr := range doc.Attributes {
		switch a := attr.(type) {
		case *tg.DocumentAttributeFilename:
			fileName = a.FileName
		case *tg.DocumentAttributeAnimated:
			animated = true
		case *tg.DocumentAttributeImageSize:
			width, height = int32(a.W), int32(a.H)
		case *tg.DocumentAttributeSticker:
			sticker = a
		case *tg.DocumentAttributeVideo:
			video = a
		case *tg.DocumentAttributeAudio:
			audio = a
		}
	}

	id := FileID(doc.ID)
	switch {
	case sticker != nil:
		return Sticker{FileID: id, Emoji: sticker.Alt, Width: width, Height: height, Size: doc.Size}
	case video != nil && animated:
		return Animation{
			FileID:     id,
			FileName:   fileName,
			MimeType:   doc.MimeType,
			Duration:   int32(video.Duration),
			Width:      int32(video.W),
			Height:     int32(video.H),
			Size:       doc.Size,
			Caption:    caption,
			HasSpoiler: spoiler,
		}
	case video != nil && video.RoundMessage:
		return VideoNote{FileID: id, Duration: int32(video.Duration), Length: int32(video.W), Size: doc.Size}
	case video != nil:
		return Video{
			FileID:     id,
			FileName:   fileName,
			MimeType:   doc.MimeType,
			Duration:   int32(video.Duration),
			Width:      int32(video.W),
			Height:     int32(video.H),
			Size:       doc.Size,
			Caption:    caption,
			HasSpoiler: spoiler,
		}
	case audio != nil && audio.Voice:
		return VoiceNote{FileID: id, MimeType: doc.MimeType, Duration: int32(audio.Duration), Size: doc.Size, Caption: caption}
	case audio != nil:
		return Audio{
			FileID:    id,
			FileName:  fileName,
			MimeType:  doc.MimeType,
			Title:     audio.Title,
			Performer: audio.Performer,
			Duration:  int32(audio.Duration),
			Size:      doc.Size,
			Caption:   caption,
		}
	default:
		return Document{FileID: id, FileName: fileName, MimeType: doc.MimeType, Size: doc.Size, Caption: caption}
	}
}
