package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleStats reports runtime counters. Admin only; silently ignored for
// everyone else.
func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}

	text := fmt.Sprintf("📈 *통계*\n\n활성 세션: %d\n백엔드: `%s`",
		h.sessions.Count(), h.cfg.AuraBaseURL)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
}
