package deps_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NguyenHuy1812/telegram-reply-info/internal/deps"
	"github.com/NguyenHuy1812/telegram-reply-info/internal/model"
)

func TestDependencies(t *testing.T) {
	t.Parallel()

	var d deps.Dependencies
	d.AddDialogAndDependencies(model.DialogIDFromChannel(7))
	d.AddDialogAndDependencies(model.DialogIDFromUser(3))
	d.AddDialogAndDependencies(0)
	d.AddDialogDependencies(model.DialogIDFromChat(4))
	d.AddFormattedText(model.FormattedText{
		Text: "hi",
		Entities: []model.MessageEntity{
			{Type: model.EntityMentionName, Offset: 0, Length: 2, UserID: 1},
			{Type: model.EntityBold, Offset: 0, Length: 2},
		},
	})
	d.AddUser(0)

	require.Equal(t, []model.UserID{1, 3}, d.UserIDs())
	require.Equal(t, []model.ChatID{4}, d.ChatIDs())
	require.Equal(t, []model.ChannelID{7}, d.ChannelIDs())
	require.Empty(t, d.SecretChatIDs())
	require.Equal(t, []model.DialogID{model.DialogIDFromChannel(7), model.DialogIDFromUser(3)}, d.DialogIDs())
}
