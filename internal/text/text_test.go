package text_test

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/require"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/text"
)

func bold(offset, length int32) model.MessageEntity {
	return model.MessageEntity{Type: model.EntityBold, Offset: offset, Length: length}
}

func TestCleanInputString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "hello", "hello", true},
		{"control", "he\x00l\x07lo\r", "hello", true},
		{"keeps newlines and tabs", "a\nb\tc", "a\nb\tc", true},
		{"direction marks", "a\u202Eb", "ab", true},
		{"invalid utf8", "a\xffb", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := text.CleanInputString(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	t.Run("clips and orders", func(t *testing.T) {
		t.Parallel()
		got, err := text.Fix("hello", []model.MessageEntity{
			bold(3, 10),
			bold(0, 0),
			{Type: model.EntityItalic, Offset: 0, Length: 2},
			{Type: model.EntityTextURL, Offset: 0, Length: 5},
			{Type: model.EntityMentionName, Offset: 0, Length: 5},
			{Type: model.EntityUnderline, Offset: 0, Length: 5},
			bold(7, 1),
		})
		require.NoError(t, err)
		require.Equal(t, "hello", got.Text)
		require.Equal(t, []model.MessageEntity{
			{Type: model.EntityUnderline, Offset: 0, Length: 5},
			{Type: model.EntityItalic, Offset: 0, Length: 2},
			bold(3, 2),
		}, got.Entities)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		t.Parallel()
		_, err := text.Fix("\xff", nil)
		require.ErrorIs(t, err, text.ErrInvalidUTF8)
	})

	t.Run("control characters", func(t *testing.T) {
		t.Parallel()
		_, err := text.Fix("a\x00b", []model.MessageEntity{bold(0, 1)})
		require.ErrorIs(t, err, text.ErrControlCharacters)
	})
}

func TestRemoveUnallowedQuoteEntities(t *testing.T) {
	t.Parallel()

	in := model.FormattedText{
		Text: "quote",
		Entities: []model.MessageEntity{
			bold(0, 1),
			{Type: model.EntityTextURL, Offset: 0, Length: 5, Argument: "https://t.me"},
			{Type: model.EntitySpoiler, Offset: 1, Length: 1},
			{Type: model.EntityCode, Offset: 2, Length: 1},
			{Type: model.EntityCustomEmoji, Offset: 3, Length: 1, CustomEmojiID: 9},
		},
	}
	got := text.RemoveUnallowedQuoteEntities(in)
	require.Equal(t, []model.MessageEntity{
		bold(0, 1),
		{Type: model.EntitySpoiler, Offset: 1, Length: 1},
		{Type: model.EntityCustomEmoji, Offset: 3, Length: 1, CustomEmojiID: 9},
	}, got.Entities)
	require.Len(t, in.Entities, 5)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   model.FormattedText
		n    int
		want model.FormattedText
	}{
		{
			name: "short",
			in:   model.FormattedText{Text: "abc", Entities: []model.MessageEntity{bold(0, 3)}},
			n:    5,
			want: model.FormattedText{Text: "abc", Entities: []model.MessageEntity{bold(0, 3)}},
		},
		{
			name: "clips entities",
			in:   model.FormattedText{Text: "abcdef", Entities: []model.MessageEntity{bold(1, 4), bold(4, 2)}},
			n:    3,
			want: model.FormattedText{Text: "abc", Entities: []model.MessageEntity{bold(1, 2)}},
		},
		{
			name: "keeps surrogate pairs whole",
			in:   model.FormattedText{Text: "a😀b"},
			n:    2,
			want: model.FormattedText{Text: "a"},
		},
		{
			name: "zero",
			in:   model.FormattedText{Text: "abc"},
			n:    0,
			want: model.FormattedText{Text: ""},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, text.Truncate(tt.in, tt.n))
		})
	}
}

func TestEntitiesFromTG(t *testing.T) {
	t.Parallel()

	got := text.EntitiesFromTG([]tg.MessageEntityClass{
		&tg.MessageEntityBold{Offset: 0, Length: 2},
		&tg.MessageEntityPre{Offset: 2, Length: 3, Language: "go"},
		&tg.MessageEntityPre{Offset: 2, Length: 3},
		&tg.MessageEntityTextURL{Offset: 1, Length: 1, URL: "https://t.me"},
		&tg.MessageEntityMentionName{Offset: 0, Length: 1, UserID: 10},
		&tg.MessageEntityMentionName{Offset: 0, Length: 1},
		&tg.MessageEntityCustomEmoji{Offset: 4, Length: 2, DocumentID: 99},
		&tg.MessageEntityUnknown{Offset: 0, Length: 1},
		nil,
	})
	require.Equal(t, []model.MessageEntity{
		bold(0, 2),
		{Type: model.EntityPreCode, Offset: 2, Length: 3, Argument: "go"},
		{Type: model.EntityPre, Offset: 2, Length: 3},
		{Type: model.EntityTextURL, Offset: 1, Length: 1, Argument: "https://t.me"},
		{Type: model.EntityMentionName, Offset: 0, Length: 1, UserID: 10},
		{Type: model.EntityCustomEmoji, Offset: 4, Length: 2, CustomEmojiID: 99},
	}, got)

	require.Nil(t, text.EntitiesFromTG(nil))
}
