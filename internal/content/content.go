// Package content holds immutable snapshots of message content.
package content

import (
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

type Type uint8

const (
	TypeText Type = iota + 1
	TypeAnimation
	TypeAudio
	TypeContact
	TypeDice
	TypeDocument
	TypeGame
	TypeLocation
	TypePhoto
	TypePoll
	TypeSticker
	TypeStory
	TypeUnsupported
	TypeVenue
	TypeVideo
	TypeVideoNote
	TypeVoiceNote
	TypeExpiredPhoto
	TypeExpiredVideo
)

var typeNames = [...]string{
	TypeText:         "Text",
	TypeAnimation:    "Animation",
	TypeAudio:        "Audio",
	TypeContact:      "Contact",
	TypeDice:         "Dice",
	TypeDocument:     "Document",
	TypeGame:         "Game",
	TypeLocation:     "Location",
	TypePhoto:        "Photo",
	TypePoll:         "Poll",
	TypeSticker:      "Sticker",
	TypeStory:        "Story",
	TypeUnsupported:  "Unsupported",
	TypeVenue:        "Venue",
	TypeVideo:        "Video",
	TypeVideoNote:    "VideoNote",
	TypeVoiceNote:    "VoiceNote",
	TypeExpiredPhoto: "ExpiredPhoto",
	TypeExpiredVideo: "ExpiredVideo",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Unknown"
}

// IsSupportedReply reports whether content of the type may be attached to a
// reply to a message from another chat.
func IsSupportedReply(t Type) bool {
	switch t {
	case TypeAnimation,
		TypeAudio,
		TypeContact,
		TypeDice,
		TypeDocument,
		TypeGame,
		TypeLocation,
		TypePhoto,
		TypePoll,
		TypeSticker,
		TypeStory,
		TypeText,
		TypeUnsupported,
		TypeVenue,
		TypeVideo,
		TypeVideoNote,
		TypeVoiceNote:
		return true
	default:
		return false
	}
}

// Content is implemented only by the snapshot types of this package.
type Content interface {
	Type() Type
	isContent()
}

// FileID is the remote id of a photo or document.
type FileID int64

type WebPage struct {
	URL        string
	DisplayURL string
	SiteName   string
	Title      string
}

type LinkPreviewOptions struct {
	URL             string
	IsDisabled      bool
	ForceSmallMedia bool
	ForceLargeMedia bool
	ShowAboveText   bool
}

type Text struct {
	Text           model.FormattedText
	WebPage        *WebPage
	PreviewOptions *LinkPreviewOptions
}

// HasPreview reports whether the text carries link preview metadata.
func (c Text) HasPreview() bool { return c.WebPage != nil || c.PreviewOptions != nil }

type Photo struct {
	PhotoID    FileID
	Caption    model.FormattedText
	HasSpoiler bool
}

type Document struct {
	FileID   FileID
	FileName string
	MimeType string
	Size     int64
	Caption  model.FormattedText
}

type Video struct {
	FileID     FileID
	FileName   string
	MimeType   string
	Duration   int32
	Width      int32
	Height     int32
	Size       int64
	Caption    model.FormattedText
	HasSpoiler bool
}

type Animation struct {
	FileID     FileID
	FileName   string
	MimeType   string
	Duration   int32
	Width      int32
	Height     int32
	Size       int64
	Caption    model.FormattedText
	HasSpoiler bool
}

type Audio struct {
	FileID    FileID
	FileName  string
	MimeType  string
	Title     string
	Performer string
	Duration  int32
	Size      int64
	Caption   model.FormattedText
}

type VoiceNote struct {
	FileID   FileID
	MimeType string
	Duration int32
	Size     int64
	Caption  model.FormattedText
}

type VideoNote struct {
	FileID   FileID
	Duration int32
	Length   int32
	Size     int64
}

type Sticker struct {
	FileID FileID
	Emoji  string
	Width  int32
	Height int32
	Size   int64
}

type Contact struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	Vcard       string
	UserID      model.UserID
}

type Location struct {
	Latitude   float64
	Longitude  float64
	LivePeriod int32
}

type Venue struct {
	Location  Location
	Title     string
	Address   string
	Provider  string
	ID        string
	VenueType string
}

type Poll struct {
	PollID int64
	Closed bool
}

type Dice struct {
	Emoji string
	Value int32
}

type Game struct {
	GameID    int64
	ShortName string
	Title     string
}

type Story struct {
	SenderDialogID model.DialogID
	StoryID        int32
	ViaMention     bool
}

type Unsupported struct{}

type ExpiredPhoto struct{}

type ExpiredVideo struct{}

func (Text) Type() Type         { return TypeText }
func (Photo) Type() Type        { return TypePhoto }
func (Document) Type() Type     { return TypeDocument }
func (Video) Type() Type        { return TypeVideo }
func (Animation) Type() Type    { return TypeAnimation }
func (Audio) Type() Type        { return TypeAudio }
func (VoiceNote) Type() Type    { return TypeVoiceNote }
func (VideoNote) Type() Type    { return TypeVideoNote }
func (Sticker) Type() Type      { return TypeSticker }
func (Contact) Type() Type      { return TypeContact }
func (Location) Type() Type     { return TypeLocation }
func (Venue) Type() Type        { return TypeVenue }
func (Poll) Type() Type         { return TypePoll }
func (Dice) Type() Type         { return TypeDice }
func (Game) Type() Type         { return TypeGame }
func (Story) Type() Type        { return TypeStory }
func (Unsupported) Type() Type  { return TypeUnsupported }
func (ExpiredPhoto) Type() Type { return TypeExpiredPhoto }
func (ExpiredVideo) Type() Type { return TypeExpiredVideo }

func (Text) isContent()         {}
func (Photo) isContent()        {}
func (Document) isContent()     {}
func (Video) isContent()        {}
func (Animation) isContent()    {}
func (Audio) isContent()        {}
func (VoiceNote) isContent()    {}
func (VideoNote) isContent()    {}
func (Sticker) isContent()      {}
func (Contact) isContent()      {}
func (Location) isContent()     {}
func (Venue) isContent()        {}
func (Poll) isContent()         {}
func (Dice) isContent()         {}
func (Game) isContent()         {}
func (Story) isContent()        {}
func (Unsupported) isContent()  {}
func (ExpiredPhoto) isContent() {}
func (ExpiredVideo) isContent() {}
