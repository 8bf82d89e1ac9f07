package handler

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMediaMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  *models.Message
		want bool
	}{
		{"photo", &models.Message{Photo: []models.PhotoSize{{FileID: "f"}}}, true},
		{"video", &models.Message{Video: &models.Video{FileID: "f"}}, true},
		{"audio", &models.Message{Audio: &models.Audio{FileID: "f"}}, true},
		{"voice", &models.Message{Voice: &models.Voice{FileID: "f"}}, true},
		{"document", &models.Message{Document: &models.Document{FileID: "f"}}, true},
		{"sticker", &models.Message{Sticker: &models.Sticker{FileID: "f"}}, true},
		{"plain text", &models.Message{Text: "hello"}, false},
		{"command", &models.Message{Text: "/start"}, false},
		{"empty", &models.Message{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMediaMessage(tt.msg))
		})
	}
}

// Media messages carry no text, so a prefix-matched text handler would capture
// them before the default handler ever ran. The wiring keeps dispatch in the
// default handler; this drives real updates through the bot to hold it there.
func TestUpdateRoutingReachesMediaPath(t *testing.T) {
	var gotMedia, gotText, gotCommand bool
	reset := func() { gotMedia, gotText, gotCommand = false, false, false }

	b, err := bot.New("123:test-token",
		bot.WithSkipGetMe(),
		bot.WithNotAsyncHandlers(),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}
			if isMediaMessage(update.Message) {
				gotMedia = true
				return
			}
			gotText = true
		}),
	)
	require.NoError(t, err)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix,
		func(ctx context.Context, b *bot.Bot, update *models.Update) {
			gotCommand = true
		})

	ctx := context.Background()

	b.ProcessUpdate(ctx, &models.Update{ID: 1, Message: &models.Message{
		ID:    10,
		Chat:  models.Chat{ID: 1},
		Photo: []models.PhotoSize{{FileID: "f1", FileUniqueID: "u1"}},
	}})
	assert.True(t, gotMedia, "photo update must reach the media path")
	assert.False(t, gotText)

	reset()
	b.ProcessUpdate(ctx, &models.Update{ID: 2, Message: &models.Message{
		ID:    11,
		Chat:  models.Chat{ID: 1},
		Video: &models.Video{FileID: "f2"},
	}})
	assert.True(t, gotMedia, "video update must reach the media path")

	reset()
	b.ProcessUpdate(ctx, &models.Update{ID: 3, Message: &models.Message{
		ID:    12,
		Chat:  models.Chat{ID: 1},
		Audio: &models.Audio{FileID: "f3"},
	}})
	assert.True(t, gotMedia, "audio update must reach the media path")

	reset()
	b.ProcessUpdate(ctx, &models.Update{ID: 4, Message: &models.Message{
		ID:   13,
		Chat: models.Chat{ID: 1},
		Text: "hello",
	}})
	assert.True(t, gotText, "plain text must reach the chat path")
	assert.False(t, gotMedia)

	reset()
	b.ProcessUpdate(ctx, &models.Update{ID: 5, Message: &models.Message{
		ID:   14,
		Chat: models.Chat{ID: 1},
		Text: "/start",
	}})
	assert.True(t, gotCommand, "commands keep their own handlers")
	assert.False(t, gotText)
	assert.False(t, gotMedia)
}
