package reply

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/content"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/origin"
)

func externalInfo() Info {
	return Info{
		messageID:     serverID(42),
		dialogID:      otherChannel,
		originDate:    testDate,
		origin:        origin.Channel(otherChannel, serverID(42), "editor"),
		content:       content.Photo{PhotoID: 11},
		quote:         ft("hi", boldEntity(0, 2)),
		quotePosition: 3,
		isQuoteManual: true,
	}
}

func TestInfoClone(t *testing.T) {
	t.Parallel()

	env := testEnv()
	for _, info := range []Info{{}, externalInfo(), {messageID: serverID(5), quote: ft("abc")}} {
		require.True(t, Equal(env, info, info), info.String())
		require.True(t, Equal(env, info, info.Clone(env)), info.String())
	}

	info := externalInfo()
	clone := info.Clone(env)
	clone.quote.Entities[0].Length = 1
	require.Equal(t, int32(2), info.quote.Entities[0].Length)
}

func TestInfoCloneForwardsStory(t *testing.T) {
	t.Parallel()

	env := testEnv()
	info := Info{content: content.Story{SenderDialogID: otherChannel, StoryID: 3, ViaMention: true}}
	require.Equal(t, content.Story{SenderDialogID: otherChannel, StoryID: 3}, info.Clone(env).Content())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	env := testEnv()
	base := externalInfo()

	withQuote := base
	withQuote.quote = ft("hi")

	withSize := Info{content: content.Document{FileID: 2, Size: 10}}
	otherSize := Info{content: content.Document{FileID: 2, Size: 20}}

	withoutContent := base
	withoutContent.content = nil

	require.False(t, Equal(env, base, withQuote))
	require.False(t, Equal(env, base, withoutContent))
	require.False(t, Equal(env, withSize, otherSize))
	require.True(t, Equal(env, Info{}, Info{}))
}

func TestInfoObject(t *testing.T) {
	t.Parallel()

	env := testEnv()
	page := &content.WebPage{URL: "https://t.me"}

	tests := []struct {
		name  string
		info  Info
		owner model.DialogID
		want  *ReplyToMessage
	}{
		{
			name:  "same chat",
			info:  Info{messageID: serverID(5)},
			owner: testChannel,
			want:  &ReplyToMessage{ChatID: int64(testChannel), MessageID: int64(serverID(5))},
		},
		{
			name:  "external",
			info:  externalInfo(),
			owner: testChannel,
			want: &ReplyToMessage{
				ChatID:         int64(otherChannel),
				MessageID:      int64(serverID(42)),
				Quote:          &TextQuote{Text: ft("hi", boldEntity(0, 2)), Position: 3, IsManual: true},
				Origin:         &origin.Origin{SenderDialogID: otherChannel, MessageID: serverID(42), AuthorSignature: "editor"},
				OriginSendDate: testDate,
				Content:        content.Photo{PhotoID: 11},
			},
		},
		{
			name: "plain text is omitted",
			info: Info{
				originDate: testDate,
				origin:     origin.User(1),
				content:    content.Text{},
			},
			owner: testChannel,
			want: &ReplyToMessage{
				Origin:         &origin.Origin{SenderUserID: 1},
				OriginSendDate: testDate,
			},
		},
		{
			name: "text with preview is kept",
			info: Info{
				originDate: testDate,
				origin:     origin.User(1),
				content:    content.Text{WebPage: page},
			},
			owner: testChannel,
			want: &ReplyToMessage{
				Origin:         &origin.Origin{SenderUserID: 1},
				OriginSendDate: testDate,
				Content:        content.Text{WebPage: &content.WebPage{URL: "https://t.me"}},
			},
		},
		{
			name: "unsupported is omitted",
			info: Info{
				originDate: testDate,
				origin:     origin.User(1),
				content:    content.Unsupported{},
			},
			owner: testChannel,
			want: &ReplyToMessage{
				Origin:         &origin.Origin{SenderUserID: 1},
				OriginSendDate: testDate,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, tt.info.Object(env, tt.owner))
		})
	}
}

func TestInfoObjectCopiesPreview(t *testing.T) {
	t.Parallel()

	env := testEnv()
	page := &content.WebPage{URL: "https://t.me"}
	info := Info{originDate: testDate, origin: origin.User(1), content: content.Text{WebPage: page}}

	obj := info.Object(env, testChannel)
	c := obj.Content.(content.Text)
	c.WebPage.URL = "changed"
	require.Equal(t, "https://t.me", page.URL)
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "reply to message 5", Info{messageID: serverID(5)}.String())
	require.Equal(t,
		"reply to message 42 in "+otherChannel.String()+
			" sent at 1700000000 by message 42 in "+otherChannel.String()+` signed "editor"`+
			" with 2 manually quoted bytes at position 3 and content of the type Photo",
		externalInfo().String(),
	)
}

func TestInfoInputReplyTo(t *testing.T) {
	t.Parallel()

	_, err := externalInfo().InputReplyTo()
	require.ErrorIs(t, err, ErrExternalReply)

	in, err := Info{}.InputReplyTo()
	require.NoError(t, err)
	require.Equal(t, Input{}, in)

	in, err = Info{messageID: model.ScheduledMessageID(3, 1<<30+10)}.InputReplyTo()
	require.NoError(t, err)
	require.Equal(t, Input{}, in)

	info := Info{messageID: serverID(5), dialogID: otherChannel, quote: ft("abc"), quotePosition: 1, isQuoteManual: true}
	in, err = info.InputReplyTo()
	require.NoError(t, err)
	require.Equal(t, Input{MessageID: serverID(5), DialogID: otherChannel, Quote: ft("abc"), QuotePosition: 1}, in)

	res := FromInput(testEnv(), Input{MessageID: serverID(5), Quote: ft("abc"), QuotePosition: 1})
	require.NoError(t, res.Err())
	in, err = res.Info.InputReplyTo()
	require.NoError(t, err)
	require.Equal(t, Input{MessageID: serverID(5), Quote: ft("abc"), QuotePosition: 1}, in)
}

func TestInfoReplyMessageFullID(t *testing.T) {
	t.Parallel()

	same := Info{messageID: serverID(5)}
	require.Equal(t, serverID(5), same.SameChatReplyToMessageID(true))
	require.Equal(t, model.MessageFullID{DialogID: testChannel, MessageID: serverID(5)}, same.ReplyMessageFullID(testChannel, true))

	ext := externalInfo()
	require.Zero(t, ext.SameChatReplyToMessageID(false))
	require.Equal(t, model.MessageFullID{DialogID: otherChannel, MessageID: serverID(42)}, ext.ReplyMessageFullID(testChannel, false))
	require.Equal(t, model.MessageFullID{}, ext.ReplyMessageFullID(testChannel, true))

	threadless := Info{messageID: serverID(7), originDate: testDate, origin: origin.User(1)}
	require.Equal(t, serverID(7), threadless.SameChatReplyToMessageID(false))
	require.Zero(t, threadless.SameChatReplyToMessageID(true))

	require.Equal(t, model.MessageFullID{}, Info{}.ReplyMessageFullID(testChannel, false))
}

func TestInfoContentRegistration(t *testing.T) {
	t.Parallel()

	manager := content.NewManager()
	env := testEnv()
	env.Contents = manager

	info := externalInfo()
	info.RegisterContent(env)
	info.Clone(env).RegisterContent(env)
	require.Equal(t, 2, manager.References(11))
	require.Equal(t, []content.FileID{11}, info.FileIDs(env))

	info.UnregisterContent(env)
	info.UnregisterContent(env)
	require.Zero(t, manager.References(11))

	Info{messageID: serverID(5)}.RegisterContent(env)
	require.Nil(t, Info{}.FileIDs(env))
}

func TestInfoReferencedPeers(t *testing.T) {
	t.Parallel()

	env := testEnv()
	mention := model.MessageEntity{Type: model.EntityMentionName, Offset: 0, Length: 1, UserID: 31}
	info := Info{
		dialogID:   model.DialogIDFromUser(20),
		originDate: testDate,
		origin:     origin.User(21),
		content:    content.Contact{FirstName: "Bob", UserID: 22},
		quote:      ft("x", mention),
	}
	require.Equal(t, []model.UserID{20, 21, 22}, info.MinUserIDs(env))
	require.Empty(t, info.MinChannelIDs(env))

	var d deps.Dependencies
	info.AddDependencies(env, &d, false)
	require.Equal(t, []model.UserID{20, 21, 22, 31}, d.UserIDs())
	require.Equal(t, []model.DialogID{model.DialogIDFromUser(20)}, d.DialogIDs())

	story := Info{
		dialogID:   otherChannel,
		originDate: testDate,
		origin:     origin.Chat(model.DialogIDFromChannel(6), ""),
		content:    content.Story{SenderDialogID: model.DialogIDFromChannel(7), StoryID: 1},
	}
	require.Equal(t, []model.ChannelID{5, 6, 7}, story.MinChannelIDs(env))

	var userDeps, botDeps deps.Dependencies
	story.AddDependencies(env, &userDeps, false)
	story.AddDependencies(env, &botDeps, true)
	require.Equal(t, []model.ChannelID{5, 6, 7}, userDeps.ChannelIDs())
	require.Equal(t, []model.ChannelID{5, 6}, botDeps.ChannelIDs())
}

func TestInfoNeedReget(t *testing.T) {
	t.Parallel()

	env := testEnv()
	require.True(t, Info{originDate: testDate, origin: origin.User(1), content: content.Unsupported{}}.NeedReget(env))
	require.False(t, externalInfo().NeedReget(env))
	require.False(t, Info{}.NeedReget(env))
}
