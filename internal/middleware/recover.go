package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that keeps a handler panic from taking down the
// update loop. The user gets an error notice so the chat does not just go
// silent.
func Recover() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				chatID := updateChatID(update)
				slog.Error("panic recovered in handler",
					"panic", r,
					"chat_id", chatID,
					"stack", string(debug.Stack()),
				)

				if chatID != 0 {
					b.SendMessage(ctx, &bot.SendMessageParams{
						ChatID: chatID,
						Text:   "요청 처리 중 오류가 발생했습니다. 다시 시도해 주세요.",
					})
				}
			}()
			next(ctx, b, update)
		}
	}
}

func updateChatID(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}
