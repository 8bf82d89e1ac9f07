package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleMessage routes a message update: media goes to the upload pipeline,
// anything else to the chat submission flow. Wired as the bot's default
// handler; command handlers match before it. A prefix-matched text handler
// would also capture media messages (their Text is empty and every string has
// the empty prefix), so routing happens here instead.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if isMediaMessage(update.Message) {
		h.HandleMedia(ctx, b, update)
		return
	}
	h.HandleText(ctx, b, update)
}

func isMediaMessage(msg *models.Message) bool {
	return len(msg.Photo) > 0 ||
		msg.Video != nil ||
		msg.Audio != nil ||
		msg.Voice != nil ||
		msg.Document != nil ||
		msg.Sticker != nil
}
