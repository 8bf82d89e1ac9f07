package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/middleware"
)

func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}

	sess.Reset()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🔄 대화가 초기화되었습니다. 새 대화를 시작하세요.",
	})
}
